package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSource(t *testing.T) {
	cases := map[string]SourceName{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ": SourceYouTube,
		"https://youtu.be/dQw4w9WgXcQ":                SourceYouTube,
		"https://x.com/golang/status/123":             SourceTwitter,
		"https://twitter.com/golang/status/123":       SourceTwitter,
		"https://mobile.twitter.com/golang/status/1":  SourceTwitter,
		"https://M.X.com/golang/status/1":             SourceTwitter,
		"https://m.facebook.com/some.page":            SourceFacebook,
		"https://github.com/golang/go":                SourceGitHub,
		"https://go.dev/blog":                         SourceNone,
		"::not a url":                                 SourceNone,
	}
	for link, want := range cases {
		assert.Equal(t, want, DetectSource(link), link)
	}
}

func TestPageNormalize(t *testing.T) {
	p := Page{}.Normalize()
	assert.Equal(t, DefaultPageNumber, p.Number)
	assert.Equal(t, DefaultPageSize, p.Size)

	assert.Equal(t, 20, Page{Number: 3, Size: 10}.Offset())
	assert.Equal(t, 0, Page{Number: -4, Size: 10}.Offset())

	assert.Equal(t, math.MaxInt, Page{Number: math.MaxInt, Size: 10}.Offset(), "Offset saturates instead of wrapping")
	assert.Equal(t, math.MaxInt, Page{Number: 3, Size: math.MaxInt}.Offset())
	assert.Equal(t, 0, Page{Number: 1, Size: math.MaxInt}.Offset())
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{ID: "u1", Username: "alice", PasswordHash: "$2a$10$hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$10$hash")
}

func TestEnums(t *testing.T) {
	assert.True(t, ContentTypeRepository.Valid())
	assert.False(t, ContentType("podcast").Valid())
	assert.True(t, SourceGitHub.Valid())
	assert.False(t, SourceName("reddit").Valid())
	assert.Equal(t, ContentTypeVideo, TypeForSource(SourceYouTube))
	assert.Equal(t, ContentTypeArticle, TypeForSource(SourceNone))
}

func TestNotASummaryLinkIsWrongURL(t *testing.T) {
	assert.ErrorIs(t, ErrNotASummaryLink, ErrWrongURL)
}
