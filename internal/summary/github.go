package summary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"secondbrain/internal/domain"
)

// GitHub summarizes a repository from its description and README.
type GitHub struct {
	client  *Client
	baseURL string
	token   string
}

func NewGitHub(client *Client, baseURL, token string) *GitHub {
	return &GitHub{client: client, baseURL: strings.TrimRight(baseURL, "/"), token: token}
}

func (g *GitHub) Source() domain.SourceName { return domain.SourceGitHub }

func (g *GitHub) headers(accept string) map[string]string {
	h := map[string]string{
		"Accept":               accept,
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if g.token != "" {
		h["Authorization"] = "Bearer " + g.token
	}
	return h
}

// Fetch reads the repository metadata and README concurrently.
func (g *GitHub) Fetch(ctx context.Context, link string) (string, error) {
	owner, repo, err := GitHubRepo(link)
	if err != nil {
		return "", err
	}
	repoURL := fmt.Sprintf("%s/repos/%s/%s", g.baseURL, url.PathEscape(owner), url.PathEscape(repo))

	var (
		meta struct {
			FullName    string `json:"full_name"`
			Description string `json:"description"`
		}
		readme string
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.client.GetJSON(egCtx, repoURL, g.headers("application/vnd.github+json"), &meta)
	})
	eg.Go(func() error {
		req, err := http.NewRequestWithContext(egCtx, http.MethodGet, repoURL+"/readme", nil)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrSummaryGenerationFailed, err)
		}
		for k, v := range g.headers("application/vnd.github.raw+json") {
			req.Header.Set(k, v)
		}
		body, err := g.client.Do(req)
		if err != nil {
			return err
		}
		readme = string(body)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return "", err
	}

	name := meta.FullName
	if name == "" {
		name = owner + "/" + repo
	}
	return fmt.Sprintf("Repository: %s\n\nDescription: %s\n\nREADME:\n%s", name, meta.Description, readme), nil
}

// GitHubRepo extracts owner and repository name from a github.com link.
// Deeper paths (tree, blob, issues) still resolve to the repository.
func GitHubRepo(link string) (owner, repo string, err error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", domain.ErrInvalidLinkFormat, err)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if host != "github.com" || len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("%w: not a github repository link: %s", domain.ErrInvalidLinkFormat, link)
	}
	return segments[0], strings.TrimSuffix(segments[1], ".git"), nil
}
