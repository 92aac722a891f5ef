package domain

import (
	"fmt"
	"math"
	"time"
)

// ContentType classifies a saved link for display.
type ContentType string

const (
	ContentTypeVideo      ContentType = "video"
	ContentTypeImage      ContentType = "image"
	ContentTypeAudio      ContentType = "audio"
	ContentTypeArticle    ContentType = "article"
	ContentTypeRepository ContentType = "repository"
)

// ContentTypes lists every accepted content type.
var ContentTypes = []ContentType{
	ContentTypeVideo,
	ContentTypeImage,
	ContentTypeAudio,
	ContentTypeArticle,
	ContentTypeRepository,
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Content is a link saved by a user, plus its classification and optional summary.
type Content struct {
	ID      string      `json:"id"`
	Link    string      `json:"link"`
	Type    ContentType `json:"type"`
	Title   string      `json:"title"`
	Tags    []string    `json:"tags"`
	Source  SourceName  `json:"source"`
	Summary string      `json:"summary,omitempty"`

	// Owner is the ID of the user who saved the link. It never changes.
	Owner string `json:"owner"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Page selects a slice of a newest-first listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// Normalize replaces non-positive values with the defaults.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = DefaultPageNumber
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// Offset is the number of records skipped before the page starts. It
// saturates at math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	p = p.Normalize()
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

func (p Page) String() string {
	return fmt.Sprintf("page %d (size %d)", p.Number, p.Size)
}

// SummaryView is the read-only projection served to anyone holding a content id
// or an item share link.
type SummaryView struct {
	Summary   string      `json:"summary"`
	Title     string      `json:"title"`
	Link      string      `json:"link"`
	Source    SourceName  `json:"source"`
	Type      ContentType `json:"type"`
	Tags      []Tag       `json:"tags"`
	CreatedAt time.Time   `json:"createdAt"`
}
