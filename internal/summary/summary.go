// Package summary turns a (source, link) pair into a human-readable summary.
//
// Each supported source has a Strategy that extracts the source's native
// identifier from the link and fetches textual metadata from the source's
// API. The fetched text is handed to a Generator with a fixed instruction and
// the generated text is returned verbatim. Unsupported sources are skipped
// without error.
package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"secondbrain/internal/domain"
)

// Instruction is prepended to every fetched text before generation.
const Instruction = "Produce a detailed, human-readable summary of the following content, preserving its key points."

// Status tells how a content record got (or did not get) its summary.
type Status string

const (
	StatusSummarized Status = "summarized"
	StatusReused     Status = "reused"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
)

// Outcome is the result of one summarization attempt.
type Outcome struct {
	Status Status
	Text   string
	Reason string
}

// Summarized reports whether the outcome carries new text.
func (o Outcome) Summarized() bool {
	return o.Status == StatusSummarized
}

// Provider produces summaries. It stores nothing.
type Provider interface {
	Summarize(ctx context.Context, source domain.SourceName, link string) (Outcome, error)
}

// Strategy fetches the text to summarize for one source.
type Strategy interface {
	Source() domain.SourceName
	// Fetch returns domain.ErrInvalidLinkFormat if link does not have the
	// shape the source expects.
	Fetch(ctx context.Context, link string) (string, error)
}

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer dispatches on the source to a registered Strategy.
type Summarizer struct {
	strategies map[domain.SourceName]Strategy
	generator  Generator
	log        logrus.FieldLogger
}

var _ Provider = (*Summarizer)(nil)

// NewSummarizer registers strategies by their source. A later strategy for the
// same source replaces an earlier one.
func NewSummarizer(generator Generator, logger logrus.FieldLogger, strategies ...Strategy) *Summarizer {
	s := &Summarizer{
		strategies: make(map[domain.SourceName]Strategy, len(strategies)),
		generator:  generator,
		log:        logger.WithField("component", "summarizer"),
	}
	for _, st := range strategies {
		s.strategies[st.Source()] = st
	}
	return s
}

// Summarize makes at most one metadata fetch and one generation call.
// Errors wrap domain.ErrInvalidLinkFormat or domain.ErrSummaryGenerationFailed.
func (s *Summarizer) Summarize(ctx context.Context, source domain.SourceName, link string) (Outcome, error) {
	log := s.log.WithFields(logrus.Fields{
		"source": source,
		"url":    link,
	})

	strategy, ok := s.strategies[source]
	if !ok {
		log.Debug("No summarization strategy for source")
		return Outcome{Status: StatusSkipped, Reason: "unsupported source"}, nil
	}

	log.Info("Attempting to summarize link")
	text, err := strategy.Fetch(ctx, link)
	if err != nil {
		return failed(err)
	}

	generated, err := s.generator.Generate(ctx, Instruction+"\n\n"+text)
	if err != nil {
		return failed(err)
	}

	log.WithField("summary_length", len(generated)).Info("Link summarized successfully")
	return Outcome{Status: StatusSummarized, Text: generated}, nil
}

func failed(err error) (Outcome, error) {
	if !errors.Is(err, domain.ErrInvalidLinkFormat) && !errors.Is(err, domain.ErrSummaryGenerationFailed) {
		err = fmt.Errorf("%w: %w", domain.ErrSummaryGenerationFailed, err)
	}
	return Outcome{Status: StatusFailed, Reason: err.Error()}, err
}
