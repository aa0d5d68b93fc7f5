package profile

import (
	"github.com/gin-gonic/gin"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/handler"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/profile"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/httputil"
)

type Handler struct {
	service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/profile/complete", h.CompleteProfile)
	r.GET("/profile/status", h.ProfileStatus)
}

type completeProfileRequest struct {
	Phone string `json:"phone" binding:"required"`
	DOB   string `json:"dob" binding:"required"`
}

// CompleteProfile records that the account supplied phone and
// date-of-birth, unlocking the booking flow.
func (h *Handler) CompleteProfile(c *gin.Context) {
	var req completeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("phone and dob are required"))
		return
	}

	if err := h.service.MarkComplete(c.Request.Context(), handler.AccountID(c), req.Phone, req.DOB); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"profile_complete": true})
}

func (h *Handler) ProfileStatus(c *gin.Context) {
	complete, err := h.service.IsComplete(c.Request.Context(), handler.AccountID(c))
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewInternal(err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"profile_complete": complete})
}
