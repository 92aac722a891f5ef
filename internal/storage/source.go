package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"secondbrain/internal/domain"
)

func (r *BadgerRepository) EnsureSource(ctx context.Context, name domain.SourceName) (domain.Source, error) {
	log := r.log.WithField("source", name)

	var s domain.Source
	created := false
	err := r.update(ctx, func(txn *badger.Txn) error {
		err := getJSON(txn, sourceKey(string(name)), &s)
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		now := r.now()
		s = domain.Source{Name: name, CreatedAt: now, UpdatedAt: now}
		created = true
		return setJSON(txn, sourceKey(string(name)), s)
	})
	if err != nil {
		log.WithError(err).Error("Failed to ensure source")
		return domain.Source{}, fmt.Errorf("failed to ensure source %s: %w", name, err)
	}
	if created {
		log.Info("Source registered")
	}
	return s, nil
}

func (r *BadgerRepository) ListSources(ctx context.Context) ([]domain.Source, error) {
	var sources []domain.Source
	err := r.view(ctx, func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(sourcePrefix), false, func(key, val []byte) error {
			s, err := decode[domain.Source](key, val)
			if err != nil {
				return err
			}
			sources = append(sources, s)
			return nil
		})
	})
	if err != nil {
		r.log.WithError(err).Error("Failed to list sources")
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].CreatedAt.Before(sources[j].CreatedAt)
	})
	return sources, nil
}
