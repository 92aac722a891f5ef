package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"secondbrain/internal/domain"
)

// maxListPrealloc bounds the capacity reserved up front for a page. Page size
// comes from the request and is not capped.
const maxListPrealloc = 100

// CreateContent stores a new content record and its indexes in one
// transaction. The owner/link index is checked inside the same transaction.
func (r *BadgerRepository) CreateContent(ctx context.Context, c domain.Content) (domain.Content, error) {
	log := r.log.WithFields(logrus.Fields{
		"owner": c.Owner,
		"url":   c.Link,
	})
	log.Debug("Attempting to save content")

	now := r.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	var existing domain.Content
	err := r.update(ctx, func(txn *badger.Txn) error {
		id, err := getString(txn, ownerLinkKey(c.Owner, c.Link))
		if err == nil {
			if err := getJSON(txn, contentKey(id), &existing); err != nil {
				return err
			}
			return domain.ErrDuplicateForOwner
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := setJSON(txn, contentKey(c.ID), c); err != nil {
			return err
		}
		if err := setString(txn, ownerIndexKey(c.Owner, c.CreatedAt, c.ID), c.ID); err != nil {
			return err
		}
		if err := setString(txn, ownerLinkKey(c.Owner, c.Link), c.ID); err != nil {
			return err
		}
		return setString(txn, linkIndexKey(c.Link, c.ID), c.ID)
	})
	if errors.Is(err, domain.ErrDuplicateForOwner) {
		log.WithField("content_id", existing.ID).Info("Content already saved by owner")
		return existing, err
	}
	if err != nil {
		log.WithError(err).Error("Failed to save content to BadgerDB")
		return domain.Content{}, fmt.Errorf("failed to save content: %w", err)
	}

	log.WithField("content_id", c.ID).Info("Content saved successfully")
	return c, nil
}

// GetContent returns domain.ErrNotFound if id is unknown.
func (r *BadgerRepository) GetContent(ctx context.Context, id string) (domain.Content, error) {
	var c domain.Content
	err := r.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, contentKey(id), &c)
	})
	if err != nil {
		return domain.Content{}, fmt.Errorf("failed to get content %s: %w", id, err)
	}
	return c, nil
}

func (r *BadgerRepository) FindContentByOwnerLink(ctx context.Context, owner, link string) (domain.Content, error) {
	var c domain.Content
	err := r.view(ctx, func(txn *badger.Txn) error {
		id, err := getString(txn, ownerLinkKey(owner, link))
		if err != nil {
			return err
		}
		return getJSON(txn, contentKey(id), &c)
	})
	if err != nil {
		return domain.Content{}, fmt.Errorf("failed to find content for owner %s: %w", owner, err)
	}
	return c, nil
}

func (r *BadgerRepository) FindSummaryForLink(ctx context.Context, link string) (string, bool, error) {
	var summary string
	err := r.view(ctx, func(txn *badger.Txn) error {
		return scanPrefix(txn, linkIndexPrefix(link), false, func(_, id []byte) error {
			var c domain.Content
			err := getJSON(txn, contentKey(string(id)), &c)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if c.Summary != "" {
				summary = c.Summary
				return errStopScan
			}
			return nil
		})
	})
	if err != nil {
		r.log.WithError(err).WithField("url", link).Error("Failed to look up reusable summary")
		return "", false, fmt.Errorf("failed to find summary for link: %w", err)
	}
	return summary, summary != "", nil
}

func (r *BadgerRepository) ListContentByOwner(ctx context.Context, owner string, page domain.Page, source domain.SourceName) ([]domain.Content, int, error) {
	log := r.log.WithFields(logrus.Fields{
		"owner":  owner,
		"page":   page.String(),
		"source": source,
	})
	log.Debug("Attempting to list content for owner")

	page = page.Normalize()
	offset := page.Offset()
	contents := make([]domain.Content, 0, min(page.Size, maxListPrealloc))
	total := 0

	err := r.view(ctx, func(txn *badger.Txn) error {
		return scanPrefix(txn, ownerIndexPrefix(owner), true, func(_, id []byte) error {
			var c domain.Content
			err := getJSON(txn, contentKey(string(id)), &c)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if source != "" && c.Source != source {
				return nil
			}
			if total >= offset && len(contents) < page.Size {
				contents = append(contents, c)
			}
			total++
			return nil
		})
	})
	if err != nil {
		log.WithError(err).Error("Failed to list content from BadgerDB")
		return nil, 0, fmt.Errorf("failed to list content for owner %s: %w", owner, err)
	}

	log.WithFields(logrus.Fields{
		"returned": len(contents),
		"total":    total,
	}).Debug("Content listed successfully")
	return contents, total, nil
}

func (r *BadgerRepository) DeleteContent(ctx context.Context, owner, id string) error {
	log := r.log.WithFields(logrus.Fields{
		"owner":      owner,
		"content_id": id,
	})
	log.Info("Attempting to delete content")

	err := r.update(ctx, func(txn *badger.Txn) error {
		var c domain.Content
		err := getJSON(txn, contentKey(id), &c)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if c.Owner != owner {
			return nil
		}
		for _, key := range [][]byte{
			contentKey(c.ID),
			ownerIndexKey(c.Owner, c.CreatedAt, c.ID),
			ownerLinkKey(c.Owner, c.Link),
			linkIndexKey(c.Link, c.ID),
		} {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete content from BadgerDB")
		return fmt.Errorf("failed to delete content %s for owner %s: %w", id, owner, err)
	}

	log.Info("Content deleted successfully")
	return nil
}

func (r *BadgerRepository) UpdateContentSummary(ctx context.Context, owner, id, summary string) (domain.Content, error) {
	var c domain.Content
	err := r.update(ctx, func(txn *badger.Txn) error {
		if err := getJSON(txn, contentKey(id), &c); err != nil {
			return err
		}
		if c.Owner != owner {
			return domain.ErrNotFound
		}
		c.Summary = summary
		c.UpdatedAt = r.now()
		return setJSON(txn, contentKey(id), c)
	})
	if err != nil {
		return domain.Content{}, fmt.Errorf("failed to update summary of content %s: %w", id, err)
	}
	return c, nil
}
