// Package api serves the query engine over HTTP.
//
// @title claimsview API
// @version 1.0
// @description Filtered, sorted, paginated and aggregated views over claims backend collections.
// @BasePath /
package api

import (
	"time"

	"claimsview/internal/logging"
	"claimsview/internal/records"
	"claimsview/internal/screens"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins           []string
	NotificationsResource string
	UnreadStatus          string
	Logger                *zap.Logger
}

// Handler holds the dependencies of every route.
type Handler struct {
	refresher     *records.Refresher
	screens       *screens.Manager
	logger        *zap.Logger
	now           func() time.Time
	notifications string
	unreadStatus  string
}

// NewHandler wires handlers to the refresher and screen manager.
func NewHandler(refresher *records.Refresher, manager *screens.Manager, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		refresher:     refresher,
		screens:       manager,
		logger:        logger,
		now:           time.Now,
		notifications: opts.NotificationsResource,
		unreadStatus:  opts.UnreadStatus,
	}
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(h *Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinMiddleware(h.logger))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
		}))
	}

	RegisterRoutes(r, h)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

// RegisterRoutes mounts the API routes on r.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.GET("/api/health", h.getHealth)

	r.GET("/api/resources", h.getResources)
	r.GET("/api/resources/:resource/view", h.getView)
	r.GET("/api/resources/:resource/stats", h.getStats)
	r.GET("/api/resources/:resource/export", h.exportResource)
	r.POST("/api/resources/:resource/refresh", h.refreshResource)
	r.PUT("/api/resources/:resource/records/:id", h.updateRecord)

	r.POST("/api/screens", h.createScreen)
	r.GET("/api/screens/:id", h.getScreen)
	r.PATCH("/api/screens/:id", h.updateScreen)
	r.DELETE("/api/screens/:id", h.deleteScreen)
	r.GET("/api/screens/:id/export", h.exportScreen)

	r.GET("/api/badges/unread", h.getUnreadBadge)
}

// respondError writes the mapped status and message of err
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := handleError(err)
	if status >= 500 {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, ErrorResponse{Error: message})
}
