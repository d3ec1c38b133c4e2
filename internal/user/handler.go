// File: internal/user/handler.go
package user

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/middleware"
	"github.com/PhangZT0803/EcoTrip/internal/shared"
)

const streamKeepAliveInterval = 15 * time.Second

// Handler handles HTTP requests for user profiles.
type Handler struct {
	service shared.Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service shared.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for user operations.
// All routes require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	users := router.Group("/users")
	users.Use(authMW)
	{
		users.GET("/me", h.GetMyProfile)
		users.GET("/me/points/stream", h.StreamMyPoints)
	}
}

// GetMyProfile returns the authenticated user's profile.
func (h *Handler) GetMyProfile(c *gin.Context) {
	uid := middleware.GetUserUIDFromContext(c)
	if uid == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User UID not found in context."))
		return
	}

	profile, err := h.service.GetByUID(c.Request.Context(), uid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Profile retrieved successfully", ToProfileResponse(profile))
}

// StreamMyPoints streams live points updates for the authenticated user as
// server-sent events. The stream ends when the client disconnects.
func (h *Handler) StreamMyPoints(c *gin.Context) {
	uid := middleware.GetUserUIDFromContext(c)
	if uid == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User UID not found in context."))
		return
	}

	updates, stop, err := h.service.WatchPoints(c.Request.Context(), uid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	defer stop()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Streaming unsupported by this connection."))
		return
	}

	keepAlive := time.NewTicker(streamKeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case update, open := <-updates:
			if !open {
				fmt.Fprint(c.Writer, "event: end\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			payload, err := json.Marshal(update)
			if err != nil {
				h.logger.Warn("Failed to encode points update", zap.String("uid", uid), zap.Error(err))
				continue
			}
			fmt.Fprintf(c.Writer, "event: points\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
