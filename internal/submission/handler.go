// File: internal/submission/handler.go
package submission

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PhangZT0803/EcoTrip/internal/challenge"
	"github.com/PhangZT0803/EcoTrip/internal/common"
	"github.com/PhangZT0803/EcoTrip/internal/middleware"
)

// maxPhotoBytes caps uploads at 10 MiB before re-encoding.
const maxPhotoBytes = 10 << 20

// Handler struct holds dependencies for submission handlers.
type Handler struct {
	service          Service
	challengeService challenge.Service
	logger           *zap.Logger
}

// NewHandler creates a new submission handler.
func NewHandler(service Service, challengeService challenge.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service:          service,
		challengeService: challengeService,
		logger:           logger,
	}
}

// RegisterRoutes sets up the routes for submission operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	submissionGroup := router.Group("/submissions")
	submissionGroup.Use(authMW)
	{
		submissionGroup.POST("", h.createSubmission)
		submissionGroup.GET("", h.getMySubmissions)
	}
}

// createSubmission accepts a multipart form with a photo file and a
// challenge_id field, validates both, and runs the submission flow.
func (h *Handler) createSubmission(c *gin.Context) {
	uid := middleware.GetUserUIDFromContext(c)
	if uid == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User UID not found in context."))
		return
	}

	challengeID := c.PostForm("challenge_id")
	if challengeID == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("The challenge_id field is required."))
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A photo file is required."))
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Photo exceeds the maximum allowed size."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("The photo file could not be read."))
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("The photo file could not be read."))
		return
	}
	if len(photo) == 0 {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("The photo file is empty."))
		return
	}

	ch, err := h.challengeService.GetChallengeByID(c.Request.Context(), challengeID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), uid, photo, ch)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondCreated(c, "Submission recorded successfully", sub)
}

func (h *Handler) getMySubmissions(c *gin.Context) {
	uid := middleware.GetUserUIDFromContext(c)
	if uid == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User UID not found in context."))
		return
	}

	subs, err := h.service.GetMySubmissions(c.Request.Context(), uid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Submissions retrieved successfully", subs)
}
