// File: internal/challenge/handler.go
package challenge

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/common"
)

// Handler struct holds dependencies for challenge handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new challenge handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for challenge operations. Reading the
// catalogue still requires a signed-in user.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	challengeGroup := router.Group("/challenges")
	challengeGroup.Use(authMW)
	{
		challengeGroup.GET("", h.getAllChallenges)
		challengeGroup.GET("/:id", h.getChallenge)
	}
}

func (h *Handler) getAllChallenges(c *gin.Context) {
	challenges, err := h.service.GetAllChallenges(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Challenges retrieved successfully", challenges)
}

func (h *Handler) getChallenge(c *gin.Context) {
	ch, err := h.service.GetChallengeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Challenge retrieved successfully", ch)
}
