package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"secondbrain/internal/domain"
)

func (r *BadgerRepository) GetShare(ctx context.Context, hash string) (domain.ShareLink, error) {
	var l domain.ShareLink
	err := r.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, shareKey(hash), &l)
	})
	if err != nil {
		return domain.ShareLink{}, fmt.Errorf("failed to get share link: %w", err)
	}
	return l, nil
}

func (r *BadgerRepository) FindOrCreateShare(ctx context.Context, link domain.ShareLink) (domain.ShareLink, error) {
	log := r.log.WithFields(logrus.Fields{
		"owner":      link.Owner,
		"content_id": link.ContentID,
	})

	indexKey := collectionShareKey(link.Owner)
	if !link.IsCollection() {
		indexKey = itemShareKey(link.Owner, link.ContentID)
	}

	result := link
	created := false
	err := r.update(ctx, func(txn *badger.Txn) error {
		hash, err := getString(txn, indexKey)
		if err == nil {
			err = getJSON(txn, shareKey(hash), &result)
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			// The index outlived its link; replace both below.
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		now := r.now()
		result = link
		result.CreatedAt, result.UpdatedAt = now, now
		created = true
		if err := setJSON(txn, shareKey(result.Hash), result); err != nil {
			return err
		}
		return setString(txn, indexKey, result.Hash)
	})
	if err != nil {
		log.WithError(err).Error("Failed to save share link")
		return domain.ShareLink{}, fmt.Errorf("failed to save share link: %w", err)
	}
	if created {
		log.Info("Share link created")
	}
	return result, nil
}

func (r *BadgerRepository) DeleteCollectionShare(ctx context.Context, owner string) error {
	err := r.update(ctx, func(txn *badger.Txn) error {
		hash, err := getString(txn, collectionShareKey(owner))
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := txn.Delete(shareKey(hash)); err != nil {
			return err
		}
		return txn.Delete(collectionShareKey(owner))
	})
	if err != nil {
		r.log.WithError(err).WithField("owner", owner).Error("Failed to delete collection share link")
		return fmt.Errorf("failed to delete collection share for owner %s: %w", owner, err)
	}
	return nil
}
