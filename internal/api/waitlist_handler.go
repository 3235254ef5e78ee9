package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ajharbinger/pomegranate-waitlist/internal/errors"
	"github.com/ajharbinger/pomegranate-waitlist/internal/logger"
	"github.com/ajharbinger/pomegranate-waitlist/internal/middleware"
	"github.com/ajharbinger/pomegranate-waitlist/internal/models"
	"github.com/ajharbinger/pomegranate-waitlist/internal/services"
)

const (
	msgJoined        = "Successfully joined the waitlist!"
	msgEmailRequired = "Email parameter required"
)

// WaitlistHandler handles waitlist submissions and lookups
type WaitlistHandler struct {
	waitlistService services.WaitlistService
	log             logger.Logger
}

// NewWaitlistHandler creates a new waitlist handler
func NewWaitlistHandler(waitlistService services.WaitlistService, log logger.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistService: waitlistService,
		log:             log.With("handler", "waitlist"),
	}
}

// Join accepts a waitlist submission
func (h *WaitlistHandler) Join(c *gin.Context) {
	var req models.WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if middleware.IsBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: apperrors.MsgInvalidBody})
		return
	}

	result, err := h.waitlistService.Join(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.JoinResponse{
		Success:       true,
		Message:       msgJoined,
		InterestScore: result.Entry.InterestScore,
	})
}

// Status reports whether the email in the query string is on the waitlist.
// Only a missing or empty parameter is rejected; a blank one is simply absent.
func (h *WaitlistHandler) Status(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgEmailRequired})
		return
	}

	status, err := h.waitlistService.Status(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// respondError maps a service error to its status and public body. Causes of
// 5xx responses are logged and never returned.
func (h *WaitlistHandler) respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	body := models.ErrorResponse{Error: apperrors.PublicMessage(err)}

	if appErr, ok := apperrors.As(err); ok && status == http.StatusBadRequest {
		body.Field = appErr.Field
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("Waitlist request failed", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
		)
	}

	c.JSON(status, body)
}
