package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"secondbrain/internal/domain"
)

// Envelope wraps every response body.
type Envelope struct {
	StatusCode int        `json:"statusCode"`
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Data       any        `json:"data"`
	Error      *ErrorBody `json:"error"`
}

// ErrorBody describes a failed request. Kind is stable and meant for clients
// to switch on; Detail is human readable.
type ErrorBody struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

// fail writes the error response for err. data is only sent for conflicts,
// which carry the record that already exists.
func fail(c *gin.Context, err error, data any) {
	status, kind := classify(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		detail = ""
	}
	if status != http.StatusConflict {
		data = nil
	}

	c.AbortWithStatusJSON(status, Envelope{
		StatusCode: status,
		Success:    false,
		Message:    http.StatusText(status),
		Data:       data,
		Error:      &ErrorBody{Kind: kind, Detail: detail},
	})
}

// classify maps domain errors to an HTTP status and error kind. Order
// matters: ErrNotASummaryLink wraps ErrWrongURL.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, "missing_field"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrInvalidLinkFormat):
		return http.StatusBadRequest, "invalid_link_format"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrNotASummaryLink):
		return http.StatusLengthRequired, "not_a_summary_link"
	case errors.Is(err, domain.ErrWrongURL):
		return http.StatusLengthRequired, "wrong_url"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrDuplicateForOwner):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, "username_taken"
	case errors.Is(err, domain.ErrSummaryGenerationFailed):
		return http.StatusBadGateway, "summary_generation_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// bindError reports a request body that failed gin binding. Fields failing
// their required rule are missing fields; any other rule is a validation
// error.
func bindError(c *gin.Context, err error) {
	fail(c, bindingError(err), nil)
}

func bindingError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "url":
			invalid = append(invalid, fe.Field()+" must be a valid URL")
		default:
			invalid = append(invalid, fe.Field()+" is invalid")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(invalid, ", "))
}
