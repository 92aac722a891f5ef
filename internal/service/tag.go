package service

import (
	"context"
	"fmt"
	"strings"

	"secondbrain/internal/domain"
	"secondbrain/internal/storage"
)

// TagService manages the labels content can reference.
type TagService struct {
	store storage.TagStore
}

func NewTagService(store storage.TagStore) *TagService {
	return &TagService{store: store}
}

// CreateTag returns the existing tag when the title is already in use.
func (s *TagService) CreateTag(ctx context.Context, title string) (domain.Tag, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Tag{}, fmt.Errorf("%w: title", domain.ErrMissingField)
	}
	return s.store.CreateTag(ctx, title)
}

func (s *TagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.store.ListTags(ctx)
}
