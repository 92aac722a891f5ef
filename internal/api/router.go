package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"secondbrain/internal/service"
)

// Handler serves the HTTP API on top of the services.
type Handler struct {
	content *service.ContentService
	sources *service.SourceRegistry
	shares  *service.ShareGateway
	users   *service.UserService
	tags    *service.TagService
	log     logrus.FieldLogger
}

func NewHandler(
	content *service.ContentService,
	sources *service.SourceRegistry,
	shares *service.ShareGateway,
	users *service.UserService,
	tags *service.TagService,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		content: content,
		sources: sources,
		shares:  shares,
		users:   users,
		tags:    tags,
		log:     logger.WithField("component", "http"),
	}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(Recovery(h.log), AccessLog(h.log))
	auth := RequireUser(h.users)

	router.GET("/health", func(c *gin.Context) {
		respond(c, http.StatusOK, "ok", gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	user := router.Group("/user")
	{
		user.POST("/signup", h.signUp)
		user.POST("/signin", h.signIn)
	}

	content := router.Group("/content")
	{
		content.POST("/add-content", auth, h.addContent)
		content.GET("/get-all-content", auth, h.listContent)
		content.DELETE("/delete-content", auth, h.deleteContent)
		content.GET("/get-all-sources", h.listSources)
		content.GET("/summary/:contentId", h.getSummary)
		content.POST("/summary/:contentId/refresh", auth, h.refreshSummary)
	}

	link := router.Group("/link")
	{
		link.POST("/create-link/:contentId", auth, h.createLink)
		link.POST("/brain-link", auth, h.brainLink)
		link.GET("/brain/:hash", h.resolveBrain)
		link.POST("/summary-link/:contentId", auth, h.createSummaryLink)
		link.GET("/summary/:hash", h.resolveSummary)
	}

	tags := router.Group("/tags")
	{
		tags.POST("", auth, h.createTag)
		tags.GET("", h.listTags)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Envelope{
			StatusCode: http.StatusNotFound,
			Message:    "route not found",
			Error:      &ErrorBody{Kind: "not_found"},
		})
	})

	return router
}
