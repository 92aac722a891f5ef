package summary

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"secondbrain/internal/domain"
)

var tweetPattern = regexp.MustCompile(`(?i)^https?://(?:www\.|mobile\.|m\.)?(?:twitter|x)\.com/[A-Za-z0-9_]{1,15}/status(?:es)?/(\d+)`)

// Twitter summarizes a single post, fetched with the v2 API.
type Twitter struct {
	client      *Client
	baseURL     string
	bearerToken string
}

func NewTwitter(client *Client, baseURL, bearerToken string) *Twitter {
	return &Twitter{client: client, baseURL: strings.TrimRight(baseURL, "/"), bearerToken: bearerToken}
}

func (t *Twitter) Source() domain.SourceName { return domain.SourceTwitter }

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			Name     string `json:"name"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

func (t *Twitter) Fetch(ctx context.Context, link string) (string, error) {
	id, err := TweetID(link)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/2/tweets/%s?expansions=author_id&tweet.fields=text", t.baseURL, id)
	headers := map[string]string{"Authorization": "Bearer " + t.bearerToken}

	var resp tweetResponse
	if err := t.client.GetJSON(ctx, endpoint, headers, &resp); err != nil {
		return "", err
	}
	if resp.Data.Text == "" {
		return "", fmt.Errorf("%w: post %s has no text", domain.ErrSummaryGenerationFailed, id)
	}

	text := "Post:\n" + resp.Data.Text
	if len(resp.Includes.Users) > 0 {
		author := resp.Includes.Users[0]
		text = fmt.Sprintf("Author: %s (@%s)\n\n%s", author.Name, author.Username, text)
	}
	return text, nil
}

// TweetID extracts the post id from twitter.com and x.com status links.
func TweetID(link string) (string, error) {
	m := tweetPattern.FindStringSubmatch(strings.TrimSpace(link))
	if m == nil {
		return "", fmt.Errorf("%w: not a post link: %s", domain.ErrInvalidLinkFormat, link)
	}
	return m[1], nil
}
