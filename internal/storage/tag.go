package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"secondbrain/internal/domain"
)

func (r *BadgerRepository) CreateTag(ctx context.Context, title string) (domain.Tag, error) {
	title = strings.TrimSpace(title)

	var t domain.Tag
	err := r.update(ctx, func(txn *badger.Txn) error {
		id, err := getString(txn, tagTitleKey(title))
		if err == nil {
			return getJSON(txn, tagKey(id), &t)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		now := r.now()
		t = domain.Tag{ID: uuid.NewString(), Title: title, CreatedAt: now, UpdatedAt: now}
		if err := setJSON(txn, tagKey(t.ID), t); err != nil {
			return err
		}
		return setString(txn, tagTitleKey(title), t.ID)
	})
	if err != nil {
		r.log.WithError(err).WithField("tag", title).Error("Failed to create tag")
		return domain.Tag{}, fmt.Errorf("failed to create tag %q: %w", title, err)
	}
	return t, nil
}

func (r *BadgerRepository) GetTag(ctx context.Context, id string) (domain.Tag, error) {
	var t domain.Tag
	err := r.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, tagKey(id), &t)
	})
	if err != nil {
		return domain.Tag{}, fmt.Errorf("failed to get tag %s: %w", id, err)
	}
	return t, nil
}

func (r *BadgerRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	err := r.view(ctx, func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(tagPrefix), false, func(key, val []byte) error {
			t, err := decode[domain.Tag](key, val)
			if err != nil {
				return err
			}
			tags = append(tags, t)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Title < tags[j].Title })
	return tags, nil
}
