package storage

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secondbrain/internal/domain"
)

// setupTestDB creates a temporary BadgerDB instance for testing.
// It returns the repository instance and a cleanup function.
func setupTestDB(t *testing.T) (*BadgerRepository, func()) {
	t.Helper()

	testLogger := logrus.New()
	testLogger.SetOutput(os.Stderr)
	testLogger.SetLevel(logrus.ErrorLevel)

	repo, err := NewBadgerRepository(t.TempDir(), testLogger)
	require.NoError(t, err, "Failed to create test BadgerDB repository")

	cleanup := func() {
		err := repo.Close()
		assert.NoError(t, err, "Failed to close test BadgerDB repository")
	}

	return repo, cleanup
}

func newContent(owner, link string, createdAt time.Time) domain.Content {
	return domain.Content{
		ID:        uuid.NewString(),
		Link:      link,
		Type:      domain.ContentTypeArticle,
		Title:     "Title for " + link,
		Source:    domain.SourceNone,
		Owner:     owner,
		CreatedAt: createdAt,
	}
}

func TestBadgerRepository_CreateAndListContent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	older := newContent("alice", "https://example.com/page1", time.Now().Add(-time.Hour))
	newer := newContent("alice", "https://example.com/page2", time.Now())
	other := newContent("bob", "https://anothersite.net", time.Now())

	for _, c := range []domain.Content{older, newer, other} {
		_, err := repo.CreateContent(ctx, c)
		require.NoError(t, err, "Failed to save %s", c.Link)
	}

	// --- Newest first, scoped to the owner ---
	contents, total, err := repo.ListContentByOwner(ctx, "alice", domain.Page{}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, contents, 2)
	assert.Equal(t, newer.ID, contents[0].ID, "First content should be the newest")
	assert.Equal(t, older.ID, contents[1].ID)

	// --- Unknown owner ---
	contents, total, err = repo.ListContentByOwner(ctx, "nobody", domain.Page{}, "")
	require.NoError(t, err, "Listing for an unknown owner should not error")
	assert.Empty(t, contents)
	assert.Zero(t, total)

	// --- Lookup by id ---
	got, err := repo.GetContent(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Owner)
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be maintained by the store")

	_, err = repo.GetContent(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBadgerRepository_CreateContentDuplicateForOwner(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	first := newContent("alice", "https://example.com/dup", time.Now())
	_, err := repo.CreateContent(ctx, first)
	require.NoError(t, err)

	second := newContent("alice", "https://example.com/dup", time.Now())
	existing, err := repo.CreateContent(ctx, second)
	require.ErrorIs(t, err, domain.ErrDuplicateForOwner)
	assert.Equal(t, first.ID, existing.ID, "The existing record should be returned")

	_, total, err := repo.ListContentByOwner(ctx, "alice", domain.Page{}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, total, "No second record should be stored")

	// Another owner may save the same link.
	_, err = repo.CreateContent(ctx, newContent("bob", "https://example.com/dup", time.Now()))
	assert.NoError(t, err)

	found, err := repo.FindContentByOwnerLink(ctx, "alice", "https://example.com/dup")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindContentByOwnerLink(ctx, "carol", "https://example.com/dup")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBadgerRepository_ListContentPagination(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		c := newContent("alice", fmt.Sprintf("https://example.com/%02d", i), base.Add(time.Duration(i)*time.Second))
		if i%5 == 0 {
			c.Source = domain.SourceGitHub
		}
		_, err := repo.CreateContent(ctx, c)
		require.NoError(t, err)
	}

	// --- Last partial page ---
	contents, total, err := repo.ListContentByOwner(ctx, "alice", domain.Page{Number: 3, Size: 10}, "")
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, contents, 5)
	assert.Equal(t, "https://example.com/04", contents[0].Link)
	assert.Equal(t, "https://example.com/00", contents[4].Link)

	// --- Past the end ---
	contents, total, err = repo.ListContentByOwner(ctx, "alice", domain.Page{Number: 9, Size: 10}, "")
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, contents)

	// --- Source filter counts only matching records ---
	contents, total, err = repo.ListContentByOwner(ctx, "alice", domain.Page{Number: 1, Size: 2}, domain.SourceGitHub)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, contents, 2)
	assert.Equal(t, "https://example.com/20", contents[0].Link)
	for _, c := range contents {
		assert.Equal(t, domain.SourceGitHub, c.Source)
	}

	// --- Huge page sizes and numbers neither allocate nor overflow ---
	contents, total, err = repo.ListContentByOwner(ctx, "alice", domain.Page{Number: 1, Size: 1 << 40}, "")
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, contents, 25)

	contents, total, err = repo.ListContentByOwner(ctx, "alice", domain.Page{Number: 1, Size: math.MaxInt}, "")
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, contents, 25)

	contents, total, err = repo.ListContentByOwner(ctx, "alice", domain.Page{Number: math.MaxInt, Size: 10}, "")
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, contents)
}

func TestBadgerRepository_DeleteContent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	toDelete := newContent("alice", "https://example.com/to_delete", time.Now())
	toKeep := newContent("alice", "https://example.com/to_keep", time.Now())
	for _, c := range []domain.Content{toDelete, toKeep} {
		_, err := repo.CreateContent(ctx, c)
		require.NoError(t, err)
	}

	// --- Deleting someone else's content is a no-op ---
	require.NoError(t, repo.DeleteContent(ctx, "mallory", toDelete.ID))
	_, err := repo.GetContent(ctx, toDelete.ID)
	require.NoError(t, err, "Content should survive a delete by another user")

	// --- Owner delete ---
	require.NoError(t, repo.DeleteContent(ctx, "alice", toDelete.ID))
	contents, total, err := repo.ListContentByOwner(ctx, "alice", domain.Page{}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, toKeep.ID, contents[0].ID)

	// --- Deleting again or deleting unknown ids is not an error ---
	assert.NoError(t, repo.DeleteContent(ctx, "alice", toDelete.ID))
	assert.NoError(t, repo.DeleteContent(ctx, "alice", "does-not-exist"))

	// The link can be saved again once deleted.
	_, err = repo.CreateContent(ctx, newContent("alice", toDelete.Link, time.Now()))
	assert.NoError(t, err)
}

func TestBadgerRepository_FindSummaryForLink(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	link := "https://github.com/x/y"

	_, found, err := repo.FindSummaryForLink(ctx, link)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = repo.CreateContent(ctx, newContent("alice", link, time.Now()))
	require.NoError(t, err)
	_, found, err = repo.FindSummaryForLink(ctx, link)
	require.NoError(t, err)
	assert.False(t, found, "Records without a summary are not reusable")

	withSummary := newContent("bob", link, time.Now())
	withSummary.Summary = "S"
	_, err = repo.CreateContent(ctx, withSummary)
	require.NoError(t, err)

	summary, found, err := repo.FindSummaryForLink(ctx, link)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "S", summary)

	updated, err := repo.UpdateContentSummary(ctx, "bob", withSummary.ID, "S2")
	require.NoError(t, err)
	assert.Equal(t, "S2", updated.Summary)

	_, err = repo.UpdateContentSummary(ctx, "alice", withSummary.ID, "hijack")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBadgerRepository_Sources(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	sources, err := repo.ListSources(ctx)
	require.NoError(t, err)
	assert.Empty(t, sources)

	first, err := repo.EnsureSource(ctx, domain.SourceYouTube)
	require.NoError(t, err)
	again, err := repo.EnsureSource(ctx, domain.SourceYouTube)
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt.UnixNano(), again.CreatedAt.UnixNano(), "EnsureSource must return the existing record")

	_, err = repo.EnsureSource(ctx, domain.SourceGitHub)
	require.NoError(t, err)

	sources, err = repo.ListSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, domain.SourceYouTube, sources[0].Name, "Sources are listed in insertion order")
	assert.Equal(t, domain.SourceGitHub, sources[1].Name)
}

func TestBadgerRepository_Tags(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	golang, err := repo.CreateTag(ctx, "golang")
	require.NoError(t, err)
	same, err := repo.CreateTag(ctx, " Golang ")
	require.NoError(t, err)
	assert.Equal(t, golang.ID, same.ID, "Tags are unique by title, case-insensitively")

	_, err = repo.CreateTag(ctx, "databases")
	require.NoError(t, err)

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "databases", tags[0].Title)

	got, err := repo.GetTag(ctx, golang.ID)
	require.NoError(t, err)
	assert.Equal(t, "golang", got.Title)

	_, err = repo.GetTag(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBadgerRepository_Shares(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// --- Collection link: find or create ---
	first, err := repo.FindOrCreateShare(ctx, domain.ShareLink{Hash: "aaaaaaaaaa", Owner: "alice"})
	require.NoError(t, err)
	second, err := repo.FindOrCreateShare(ctx, domain.ShareLink{Hash: "bbbbbbbbbb", Owner: "alice"})
	require.NoError(t, err)
	assert.Equal(t, first.Hash, second.Hash, "An owner has at most one collection link")

	_, err = repo.GetShare(ctx, "bbbbbbbbbb")
	assert.ErrorIs(t, err, domain.ErrNotFound, "The discarded hash must not be stored")

	// --- Item links are keyed by content ---
	item, err := repo.FindOrCreateShare(ctx, domain.ShareLink{Hash: "cccccccccc", Owner: "alice", ContentID: "c1"})
	require.NoError(t, err)
	assert.False(t, item.IsCollection())
	other, err := repo.FindOrCreateShare(ctx, domain.ShareLink{Hash: "dddddddddd", Owner: "alice", ContentID: "c2"})
	require.NoError(t, err)
	assert.NotEqual(t, item.Hash, other.Hash)

	// --- Revoking the collection link leaves item links alone ---
	require.NoError(t, repo.DeleteCollectionShare(ctx, "alice"))
	_, err = repo.GetShare(ctx, first.Hash)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetShare(ctx, item.Hash)
	assert.NoError(t, err)
	assert.NoError(t, repo.DeleteCollectionShare(ctx, "alice"), "Revoking twice is not an error")

	fresh, err := repo.FindOrCreateShare(ctx, domain.ShareLink{Hash: "eeeeeeeeee", Owner: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "eeeeeeeeee", fresh.Hash)
}

func TestBadgerRepository_Users(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	u, err := repo.CreateUser(ctx, domain.User{ID: "u1", Username: "Alice", PasswordHash: "$2a$10$hash", TelegramID: 42})
	require.NoError(t, err)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.CreateUser(ctx, domain.User{ID: "u2", Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	byName, err := repo.GetUserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "u1", byName.ID)
	assert.Equal(t, "$2a$10$hash", byName.PasswordHash, "The password hash survives a reload")

	byID, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", byID.PasswordHash)

	byTelegram, err := repo.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "u1", byTelegram.ID)
	assert.Equal(t, "$2a$10$hash", byTelegram.PasswordHash)

	_, err = repo.GetUser(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
