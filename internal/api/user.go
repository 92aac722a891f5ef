package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tagRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, "user created", user)
}

func (h *Handler) signIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "signed in", gin.H{"token": token})
}

func (h *Handler) createTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	tag, err := h.tags.CreateTag(c.Request.Context(), req.Title)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, "tag saved", tag)
}

func (h *Handler) listTags(c *gin.Context) {
	tags, err := h.tags.ListTags(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, "tags fetched", tags)
}
