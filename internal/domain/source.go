package domain

import (
	"net/url"
	"strings"
	"time"
)

// SourceName identifies the platform a link comes from. It selects the
// summarization strategy.
type SourceName string

const (
	SourceNone     SourceName = "none"
	SourceYouTube  SourceName = "youtube"
	SourceTwitter  SourceName = "twitter"
	SourceFacebook SourceName = "facebook"
	SourceGitHub   SourceName = "github"
)

// SourceNames lists every accepted source.
var SourceNames = []SourceName{
	SourceNone,
	SourceYouTube,
	SourceTwitter,
	SourceFacebook,
	SourceGitHub,
}

// Valid reports whether s is one of the known sources.
func (s SourceName) Valid() bool {
	for _, known := range SourceNames {
		if s == known {
			return true
		}
	}
	return false
}

var sourceHosts = map[string]SourceName{
	"youtube.com":  SourceYouTube,
	"youtu.be":     SourceYouTube,
	"twitter.com":  SourceTwitter,
	"x.com":        SourceTwitter,
	"facebook.com": SourceFacebook,
	"fb.com":       SourceFacebook,
	"github.com":   SourceGitHub,
}

// DetectSource classifies a link by its host. Unknown hosts and unparsable
// links are SourceNone.
func DetectSource(link string) SourceName {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return SourceNone
	}
	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "mobile.", "m."} {
		host = strings.TrimPrefix(host, prefix)
	}
	if s, ok := sourceHosts[host]; ok {
		return s
	}
	return SourceNone
}

// TypeForSource is the content type assumed when a client does not choose one.
func TypeForSource(s SourceName) ContentType {
	switch s {
	case SourceYouTube:
		return ContentTypeVideo
	case SourceGitHub:
		return ContentTypeRepository
	default:
		return ContentTypeArticle
	}
}

// Source is a registry entry for a known source name.
type Source struct {
	Name      SourceName `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
