package storage

import (
	"context"

	"secondbrain/internal/domain"
)

// ContentStore persists saved links.
type ContentStore interface {
	// CreateContent stores c. If the owner already saved the same link, the
	// existing record is returned together with domain.ErrDuplicateForOwner.
	CreateContent(ctx context.Context, c domain.Content) (domain.Content, error)

	GetContent(ctx context.Context, id string) (domain.Content, error)

	// FindContentByOwnerLink returns domain.ErrNotFound when the owner has not
	// saved link.
	FindContentByOwnerLink(ctx context.Context, owner, link string) (domain.Content, error)

	// FindSummaryForLink returns the summary of any record, from any owner,
	// that has the same link and a non-empty summary.
	FindSummaryForLink(ctx context.Context, link string) (summary string, found bool, err error)

	// ListContentByOwner returns one page of the owner's records, newest first,
	// and the number of records matching the filter. An empty source matches all.
	ListContentByOwner(ctx context.Context, owner string, page domain.Page, source domain.SourceName) ([]domain.Content, int, error)

	// DeleteContent removes the record only if owner owns it. Deleting anything
	// else is a no-op.
	DeleteContent(ctx context.Context, owner, id string) error

	UpdateContentSummary(ctx context.Context, owner, id, summary string) (domain.Content, error)
}

// SourceStore is the registry of known sources.
type SourceStore interface {
	// EnsureSource returns the named source, creating it first if needed.
	EnsureSource(ctx context.Context, name domain.SourceName) (domain.Source, error)

	// ListSources returns all sources in insertion order.
	ListSources(ctx context.Context) ([]domain.Source, error)
}

// TagStore persists tags.
type TagStore interface {
	// CreateTag returns the tag with the given title, creating it if needed.
	CreateTag(ctx context.Context, title string) (domain.Tag, error)
	GetTag(ctx context.Context, id string) (domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
}

// ShareStore persists share links.
type ShareStore interface {
	GetShare(ctx context.Context, hash string) (domain.ShareLink, error)

	// FindOrCreateShare stores link unless the owner already has a link for
	// the same target (the collection, or link.ContentID); in that case the
	// existing link is returned and link is discarded.
	FindOrCreateShare(ctx context.Context, link domain.ShareLink) (domain.ShareLink, error)

	// DeleteCollectionShare removes the owner's collection link, if any.
	DeleteCollectionShare(ctx context.Context, owner string) error
}

// UserStore persists accounts.
type UserStore interface {
	// CreateUser returns domain.ErrUsernameTaken if the username is in use.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (domain.User, error)
}

// Repository is everything the application stores. It allows swapping
// storage implementations without changing the services that use it.
type Repository interface {
	ContentStore
	SourceStore
	TagStore
	ShareStore
	UserStore

	// Close gracefully shuts down the repository connection.
	Close() error
}
