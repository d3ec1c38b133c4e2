// File: internal/auth/handler.go
package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/user"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for session operations. These routes are
// unauthenticated; the ID token in the sign-in body is the credential.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/session", h.signIn)
		authGroup.DELETE("/session", h.signOut)
		authGroup.GET("/session", h.cachedSession)
	}
}

func (h *Handler) signIn(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Sign-in: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	profile, result, err := h.service.SignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Signed in successfully", SessionResponse{
		Profile:         user.ToProfileResponse(profile),
		Created:         result.Created,
		InheritedPoints: result.InheritedPoints,
	})
}

func (h *Handler) signOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context()); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) cachedSession(c *gin.Context) {
	record, err := h.service.CachedSession(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Cached session retrieved successfully", CachedSessionResponse{
		UserUID:    record.UserUID,
		UserEmail:  record.UserEmail,
		IsLoggedIn: record.IsLoggedIn,
	})
}
