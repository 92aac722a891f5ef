package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"secondbrain/internal/domain"
	"secondbrain/internal/metrics"
	"secondbrain/internal/storage"
	"secondbrain/internal/summary"
)

const minTitleLength = 3

// CreateContentInput is what a user submits to save a link. An empty Source
// is detected from the link's host.
type CreateContentInput struct {
	Owner  string
	Link   string
	Type   domain.ContentType
	Title  string
	Tags   []string
	Source domain.SourceName
}

// ContentService owns saved links and decides, per new record, whether to
// reuse an existing summary or ask the summary provider for one.
type ContentService struct {
	store      storage.ContentStore
	tags       storage.TagStore
	sources    *SourceRegistry
	summarizer summary.Provider
	log        logrus.FieldLogger
}

func NewContentService(store storage.ContentStore, tags storage.TagStore, sources *SourceRegistry, summarizer summary.Provider, logger logrus.FieldLogger) *ContentService {
	return &ContentService{
		store:      store,
		tags:       tags,
		sources:    sources,
		summarizer: summarizer,
		log:        logger.WithField("component", "content_service"),
	}
}

// Create saves a link for its owner.
//
// If the owner already saved the link, the existing record is returned with
// domain.ErrDuplicateForOwner. Otherwise a summary already computed for the
// same link by anyone is copied; failing that the summary provider is asked.
// Summarization failures never prevent the record from being stored.
func (s *ContentService) Create(ctx context.Context, in CreateContentInput) (domain.Content, error) {
	in, err := s.validate(ctx, in)
	if err != nil {
		return domain.Content{}, err
	}

	log := s.log.WithFields(logrus.Fields{
		"owner":  in.Owner,
		"url":    in.Link,
		"source": in.Source,
	})
	log.Info("Attempting to create content")

	if _, err := s.sources.EnsureSource(ctx, in.Source); err != nil {
		return domain.Content{}, err
	}

	existing, err := s.store.FindContentByOwnerLink(ctx, in.Owner, in.Link)
	if err == nil {
		log.WithField("content_id", existing.ID).Info("Link already saved by owner")
		metrics.RecordContentCreated("duplicate")
		return existing, domain.ErrDuplicateForOwner
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Content{}, err
	}

	outcome := s.summarize(ctx, log, in.Source, in.Link)

	created, err := s.store.CreateContent(ctx, domain.Content{
		ID:      uuid.NewString(),
		Link:    in.Link,
		Type:    in.Type,
		Title:   in.Title,
		Tags:    in.Tags,
		Source:  in.Source,
		Summary: outcome.Text,
		Owner:   in.Owner,
	})
	if errors.Is(err, domain.ErrDuplicateForOwner) {
		metrics.RecordContentCreated("duplicate")
		return created, err
	}
	if err != nil {
		return domain.Content{}, err
	}

	metrics.RecordContentCreated("created")
	log.WithFields(logrus.Fields{
		"content_id":     created.ID,
		"summary_status": outcome.Status,
	}).Info("Content created successfully")
	return created, nil
}

// summarize never fails: errors are logged and turn into a failed outcome
// with no text.
func (s *ContentService) summarize(ctx context.Context, log logrus.FieldLogger, source domain.SourceName, link string) summary.Outcome {
	outcome := func() summary.Outcome {
		reused, found, err := s.store.FindSummaryForLink(ctx, link)
		if err != nil {
			log.WithError(err).Warn("Could not look up a reusable summary")
		}
		if found {
			log.Debug("Reusing summary from an existing record")
			return summary.Outcome{Status: summary.StatusReused, Text: reused}
		}

		out, err := s.summarizer.Summarize(ctx, source, link)
		if err != nil {
			log.WithError(err).Warn("Summary generation failed, saving content without summary")
			return summary.Outcome{Status: summary.StatusFailed, Reason: err.Error()}
		}
		return out
	}()

	metrics.RecordSummary(string(source), string(outcome.Status))
	return outcome
}

func (s *ContentService) validate(ctx context.Context, in CreateContentInput) (CreateContentInput, error) {
	in.Link = strings.TrimSpace(in.Link)
	in.Title = strings.TrimSpace(in.Title)

	switch {
	case in.Owner == "":
		return in, fmt.Errorf("%w: owner", domain.ErrMissingField)
	case in.Link == "":
		return in, fmt.Errorf("%w: link", domain.ErrMissingField)
	case in.Type == "":
		return in, fmt.Errorf("%w: type", domain.ErrMissingField)
	case in.Title == "":
		return in, fmt.Errorf("%w: title", domain.ErrMissingField)
	}

	if !in.Type.Valid() {
		return in, fmt.Errorf("%w: unknown content type %q", domain.ErrValidation, in.Type)
	}
	if utf8.RuneCountInString(in.Title) < minTitleLength {
		return in, fmt.Errorf("%w: title must be at least %d characters", domain.ErrValidation, minTitleLength)
	}

	if in.Source == "" {
		in.Source = domain.DetectSource(in.Link)
	}
	if !in.Source.Valid() {
		return in, fmt.Errorf("%w: unknown source %q", domain.ErrValidation, in.Source)
	}

	tags := make([]string, 0, len(in.Tags))
	seen := make(map[string]bool, len(in.Tags))
	for _, id := range in.Tags {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.tags.GetTag(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return in, fmt.Errorf("%w: tag %s does not exist", domain.ErrValidation, id)
			}
			return in, err
		}
		tags = append(tags, id)
	}
	in.Tags = tags

	return in, nil
}

// ListForOwner returns one page of the owner's content, newest first, and the
// number of records matching the optional source filter.
func (s *ContentService) ListForOwner(ctx context.Context, owner string, page domain.Page, source domain.SourceName) ([]domain.Content, int, error) {
	return s.store.ListContentByOwner(ctx, owner, page.Normalize(), source)
}

// DeleteForOwner removes the owner's record. Ids the owner does not own are
// silently ignored.
func (s *ContentService) DeleteForOwner(ctx context.Context, owner, contentID string) error {
	return s.store.DeleteContent(ctx, owner, contentID)
}

// GetSummaryView is not owner-scoped: anyone with the id may read it.
func (s *ContentService) GetSummaryView(ctx context.Context, contentID string) (domain.SummaryView, error) {
	c, err := s.store.GetContent(ctx, contentID)
	if err != nil {
		return domain.SummaryView{}, err
	}

	tags := make([]domain.Tag, 0, len(c.Tags))
	for _, id := range c.Tags {
		t, err := s.tags.GetTag(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return domain.SummaryView{}, err
		}
		tags = append(tags, t)
	}

	return domain.SummaryView{
		Summary:   c.Summary,
		Title:     c.Title,
		Link:      c.Link,
		Source:    c.Source,
		Type:      c.Type,
		Tags:      tags,
		CreatedAt: c.CreatedAt,
	}, nil
}

// RefreshSummary asks the provider again for one of the owner's records and
// stores the new text. Unlike Create, provider errors are returned.
func (s *ContentService) RefreshSummary(ctx context.Context, owner, contentID string) (domain.Content, error) {
	c, err := s.store.GetContent(ctx, contentID)
	if err != nil {
		return domain.Content{}, err
	}
	if c.Owner != owner {
		return domain.Content{}, fmt.Errorf("content %s: %w", contentID, domain.ErrNotFound)
	}

	out, err := s.summarizer.Summarize(ctx, c.Source, c.Link)
	metrics.RecordSummary(string(c.Source), string(out.Status))
	if err != nil {
		return domain.Content{}, err
	}
	if !out.Summarized() {
		return c, nil
	}
	return s.store.UpdateContentSummary(ctx, owner, contentID, out.Text)
}
