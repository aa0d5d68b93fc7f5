package booking

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/booking"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/handler"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/httputil"
)

type Handler struct {
	service *booking.Service
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.CreateBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(bindingMessage(err)))
		return
	}

	result, err := h.service.Submit(c.Request.Context(), booking.SubmitParams{
		Token:        handler.UpstreamToken(c),
		AccountEmail: handler.AccountEmail(c),
		Request:      &req,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, result)
}

// bindingMessage flattens validator errors into one user-facing line.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return "missing or invalid fields: " + strings.Join(fields, ", ")
}
