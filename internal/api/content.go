package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"secondbrain/internal/domain"
	"secondbrain/internal/service"
)

type addContentRequest struct {
	Link   string   `json:"link" binding:"required,url"`
	Type   string   `json:"type" binding:"required"`
	Title  string   `json:"title" binding:"required"`
	Tags   []string `json:"tags"`
	Source string   `json:"source"`
}

type deleteContentRequest struct {
	ContentID string `json:"contentId" binding:"required"`
}

type contentPage struct {
	Content []domain.Content `json:"content"`
	Count   int              `json:"count"`
}

func (h *Handler) addContent(c *gin.Context) {
	var req addContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.content.Create(c.Request.Context(), service.CreateContentInput{
		Owner:  currentUser(c).ID,
		Link:   req.Link,
		Type:   domain.ContentType(req.Type),
		Title:  req.Title,
		Tags:   req.Tags,
		Source: domain.SourceName(req.Source),
	})
	if errors.Is(err, domain.ErrDuplicateForOwner) {
		fail(c, err, created)
		return
	}
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "content created", created)
}

func (h *Handler) listContent(c *gin.Context) {
	source, err := sourceQuery(c)
	if err != nil {
		fail(c, err, nil)
		return
	}

	items, count, err := h.content.ListForOwner(c.Request.Context(), currentUser(c).ID, pageQuery(c), source)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "content fetched", contentPage{Content: items, Count: count})
}

func (h *Handler) deleteContent(c *gin.Context) {
	var req deleteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.content.DeleteForOwner(c.Request.Context(), currentUser(c).ID, req.ContentID); err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "content deleted", nil)
}

func (h *Handler) listSources(c *gin.Context) {
	sources, err := h.sources.ListSources(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "sources fetched", sources)
}

func (h *Handler) getSummary(c *gin.Context) {
	view, err := h.content.GetSummaryView(c.Request.Context(), c.Param("contentId"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "summary fetched", view)
}

func (h *Handler) refreshSummary(c *gin.Context) {
	updated, err := h.content.RefreshSummary(c.Request.Context(), currentUser(c).ID, c.Param("contentId"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "summary refreshed", updated)
}

// pageQuery reads pageNumber and pageSize. Absent or non-numeric values fall
// back to the defaults.
func pageQuery(c *gin.Context) domain.Page {
	return domain.Page{Number: intQuery(c, "pageNumber"), Size: intQuery(c, "pageSize")}.Normalize()
}

// intQuery is 0 for absent, non-numeric and out of range values.
func intQuery(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func sourceQuery(c *gin.Context) (domain.SourceName, error) {
	source := domain.SourceName(c.Query("source"))
	if source != "" && !source.Valid() {
		return "", fmt.Errorf("%w: unknown source %q", domain.ErrValidation, source)
	}
	return source, nil
}
