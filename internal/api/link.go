package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"secondbrain/internal/domain"
	"secondbrain/internal/service"
)

type brainLinkRequest struct {
	ShareBrain *bool `json:"shareBrain" binding:"required"`
}

type shareURL struct {
	URL string `json:"url"`
}

func (h *Handler) createLink(c *gin.Context) {
	link, err := h.shares.CreateItemLink(c.Request.Context(), currentUser(c).ID, c.Param("contentId"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, "link created", link)
}

func (h *Handler) brainLink(c *gin.Context) {
	var req brainLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	owner := currentUser(c).ID

	if !*req.ShareBrain {
		if err := h.shares.DisableShare(c.Request.Context(), owner); err != nil {
			fail(c, err, nil)
			return
		}
		respond(c, http.StatusOK, "brain sharing disabled", nil)
		return
	}

	url, err := h.shares.EnableShare(c.Request.Context(), owner)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, "brain sharing enabled", shareURL{URL: url})
}

func (h *Handler) resolveBrain(c *gin.Context) {
	hash, err := hashParam(c)
	if err != nil {
		fail(c, err, nil)
		return
	}
	source, err := sourceQuery(c)
	if err != nil {
		fail(c, err, nil)
		return
	}

	view, err := h.shares.ResolveCollectionLink(c.Request.Context(), hash, pageQuery(c), source)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "brain fetched", view)
}

func (h *Handler) createSummaryLink(c *gin.Context) {
	url, err := h.shares.CreateSummaryLink(c.Request.Context(), currentUser(c).ID, c.Param("contentId"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, "summary link created", shareURL{URL: url})
}

func (h *Handler) resolveSummary(c *gin.Context) {
	hash, err := hashParam(c)
	if err != nil {
		fail(c, err, nil)
		return
	}

	view, err := h.shares.ResolveItemSummaryLink(c.Request.Context(), hash)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "summary fetched", view)
}

func hashParam(c *gin.Context) (string, error) {
	hash := c.Param("hash")
	if len(hash) < service.MinHashLength {
		return "", fmt.Errorf("%w: hash must be at least %d characters", domain.ErrValidation, service.MinHashLength)
	}
	return hash, nil
}
