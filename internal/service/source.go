package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"secondbrain/internal/domain"
	"secondbrain/internal/storage"
)

// SourceRegistry keeps the set of known sources.
type SourceRegistry struct {
	store storage.SourceStore
	log   logrus.FieldLogger
}

func NewSourceRegistry(store storage.SourceStore, logger logrus.FieldLogger) *SourceRegistry {
	return &SourceRegistry{
		store: store,
		log:   logger.WithField("component", "source_registry"),
	}
}

// EnsureSource returns the named source, registering it first if it is new.
// Calling it repeatedly with the same name yields one record.
func (r *SourceRegistry) EnsureSource(ctx context.Context, name domain.SourceName) (domain.Source, error) {
	if !name.Valid() {
		return domain.Source{}, fmt.Errorf("%w: unknown source %q", domain.ErrValidation, name)
	}
	return r.store.EnsureSource(ctx, name)
}

// ListSources returns domain.ErrNotFound when no source is registered yet.
func (r *SourceRegistry) ListSources(ctx context.Context) ([]domain.Source, error) {
	sources, err := r.store.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources registered: %w", domain.ErrNotFound)
	}
	return sources, nil
}
