package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required input is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrValidation is returned for inputs that are present but unacceptable.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateForOwner is returned together with the existing record when
	// an owner saves a link they already have.
	ErrDuplicateForOwner = errors.New("content already exists")

	// ErrInvalidLinkFormat is returned when a link does not have the shape its
	// source expects.
	ErrInvalidLinkFormat = errors.New("invalid link format")

	// ErrSummaryGenerationFailed wraps any failure fetching metadata or
	// generating the summary text.
	ErrSummaryGenerationFailed = errors.New("summary generation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrWrongURL is returned for unknown share hashes.
	ErrWrongURL = errors.New("wrong url")

	// ErrNotASummaryLink is returned when a collection hash is used where an
	// item hash is expected.
	ErrNotASummaryLink = fmt.Errorf("not a summary link: %w", ErrWrongURL)

	ErrUnauthorized  = errors.New("unauthorized")
	ErrUsernameTaken = errors.New("username already taken")
)
