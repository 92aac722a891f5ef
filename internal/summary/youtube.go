package summary

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"secondbrain/internal/domain"
)

var youtubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTube summarizes videos from their title and description, fetched with
// the YouTube Data API v3.
type YouTube struct {
	client  *Client
	baseURL string
	apiKey  string
}

func NewYouTube(client *Client, baseURL, apiKey string) *YouTube {
	return &YouTube{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (y *YouTube) Source() domain.SourceName { return domain.SourceYouTube }

type youtubeVideos struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

func (y *YouTube) Fetch(ctx context.Context, link string) (string, error) {
	id, err := YouTubeVideoID(link)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", id)
	q.Set("key", y.apiKey)

	var resp youtubeVideos
	if err := y.client.GetJSON(ctx, y.baseURL+"/videos?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("%w: youtube video %s not found", domain.ErrSummaryGenerationFailed, id)
	}
	snippet := resp.Items[0].Snippet
	return "Title: " + snippet.Title + "\n\nDescription:\n" + snippet.Description, nil
}

// YouTubeVideoID extracts the video id from watch, short, embed and youtu.be
// links.
func YouTubeVideoID(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidLinkFormat, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch {
	case host == "youtu.be":
		id = segments[0]
	case host == "youtube.com" && u.Path == "/watch":
		id = u.Query().Get("v")
	case host == "youtube.com" && len(segments) == 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live"):
		id = segments[1]
	}

	if !youtubeIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: not a youtube video link: %s", domain.ErrInvalidLinkFormat, link)
	}
	return id, nil
}
