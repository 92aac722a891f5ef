package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"secondbrain/internal/domain"
	"secondbrain/internal/metrics"
	"secondbrain/internal/storage"
)

const (
	// MinHashLength is the shortest hash accepted anywhere.
	MinHashLength = 7

	CollectionHashLength = 20
	ItemHashLength       = 10
)

// GenerateHash returns n characters of cryptographically random data in the
// URL-safe base64 alphabet, without padding.
func GenerateHash(n int) (string, error) {
	if n < MinHashLength {
		return "", fmt.Errorf("%w: hash length must be at least %d", domain.ErrValidation, MinHashLength)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}

// ShareGateway hands out share hashes and resolves them. A hash is a bearer
// capability: resolution does not check who is asking.
type ShareGateway struct {
	shares  storage.ShareStore
	users   storage.UserStore
	content *ContentService
	baseURL string
	log     logrus.FieldLogger
}

func NewShareGateway(shares storage.ShareStore, users storage.UserStore, content *ContentService, baseURL string, logger logrus.FieldLogger) *ShareGateway {
	return &ShareGateway{
		shares:  shares,
		users:   users,
		content: content,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logger.WithField("component", "share_gateway"),
	}
}

func (g *ShareGateway) CollectionURL(hash string) string {
	return g.baseURL + "/link/brain/" + hash
}

func (g *ShareGateway) SummaryURL(hash string) string {
	return g.baseURL + "/link/summary/" + hash
}

// EnableShare returns the owner's collection link URL, creating the link if
// the owner has none.
func (g *ShareGateway) EnableShare(ctx context.Context, owner string) (string, error) {
	hash, err := GenerateHash(CollectionHashLength)
	if err != nil {
		return "", err
	}
	link, err := g.shares.FindOrCreateShare(ctx, domain.ShareLink{Hash: hash, Owner: owner})
	if err != nil {
		return "", err
	}
	return g.CollectionURL(link.Hash), nil
}

// DisableShare revokes the owner's collection link. It is not an error if
// there is none.
func (g *ShareGateway) DisableShare(ctx context.Context, owner string) error {
	g.log.WithField("owner", owner).Info("Disabling collection share")
	return g.shares.DeleteCollectionShare(ctx, owner)
}

// CreateItemLink returns the owner's link for one of their content records,
// creating it on first use.
func (g *ShareGateway) CreateItemLink(ctx context.Context, owner, contentID string) (domain.ShareLink, error) {
	c, err := g.content.store.GetContent(ctx, contentID)
	if err != nil {
		return domain.ShareLink{}, err
	}
	if c.Owner != owner {
		return domain.ShareLink{}, fmt.Errorf("content %s: %w", contentID, domain.ErrNotFound)
	}

	hash, err := GenerateHash(ItemHashLength)
	if err != nil {
		return domain.ShareLink{}, err
	}
	return g.shares.FindOrCreateShare(ctx, domain.ShareLink{Hash: hash, Owner: owner, ContentID: contentID})
}

// CreateSummaryLink is CreateItemLink returning the summary URL.
func (g *ShareGateway) CreateSummaryLink(ctx context.Context, owner, contentID string) (string, error) {
	link, err := g.CreateItemLink(ctx, owner, contentID)
	if err != nil {
		return "", err
	}
	return g.SummaryURL(link.Hash), nil
}

func (g *ShareGateway) lookup(ctx context.Context, hash string) (domain.ShareLink, error) {
	if len(hash) < MinHashLength {
		return domain.ShareLink{}, domain.ErrWrongURL
	}
	link, err := g.shares.GetShare(ctx, hash)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ShareLink{}, domain.ErrWrongURL
	}
	return link, err
}

// ResolveCollectionLink returns one page of the sharing owner's content.
// Item hashes do not grant access to the collection.
func (g *ShareGateway) ResolveCollectionLink(ctx context.Context, hash string, page domain.Page, source domain.SourceName) (domain.CollectionView, error) {
	link, err := g.lookup(ctx, hash)
	if err == nil && !link.IsCollection() {
		err = domain.ErrWrongURL
	}
	if err != nil {
		metrics.RecordShareResolution("collection", resultLabel(err))
		return domain.CollectionView{}, err
	}

	owner, err := g.users.GetUser(ctx, link.Owner)
	if err != nil {
		metrics.RecordShareResolution("collection", resultLabel(err))
		return domain.CollectionView{}, err
	}

	contents, count, err := g.content.ListForOwner(ctx, link.Owner, page, source)
	if err != nil {
		return domain.CollectionView{}, err
	}
	metrics.RecordShareResolution("collection", "ok")
	return domain.CollectionView{Username: owner.Username, Content: contents, Count: count}, nil
}

// ResolveItemSummaryLink returns the summary view behind an item hash. A hash
// whose content was deleted resolves to domain.ErrNotFound.
func (g *ShareGateway) ResolveItemSummaryLink(ctx context.Context, hash string) (domain.SummaryView, error) {
	link, err := g.lookup(ctx, hash)
	if err == nil && link.IsCollection() {
		err = domain.ErrNotASummaryLink
	}
	if err != nil {
		metrics.RecordShareResolution("item", resultLabel(err))
		return domain.SummaryView{}, err
	}

	view, err := g.content.GetSummaryView(ctx, link.ContentID)
	if err != nil {
		metrics.RecordShareResolution("item", resultLabel(err))
		return domain.SummaryView{}, err
	}
	metrics.RecordShareResolution("item", "ok")
	return view, nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrWrongURL):
		return "wrong_url"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
