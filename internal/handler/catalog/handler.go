package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/catalog"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/handler"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/httputil"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.ListDoctors)
	r.GET("/doctors/:id/slots", h.ListSlots)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.LoadDoctors(c.Request.Context(), handler.UpstreamToken(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"doctors": doctors})
}

// ListSlots returns a doctor's slots. With a date query parameter only
// slots that are open for booking on that date are returned; without
// one the raw set is returned for the UI to post-process. A load
// failure is surfaced as an error so the UI can distinguish it from a
// genuinely empty day.
func (h *Handler) ListSlots(c *gin.Context) {
	doctorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.NewBadRequest("invalid doctor ID", err))
		return
	}

	slots, err := h.service.LoadSlots(c.Request.Context(), handler.UpstreamToken(c), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if date := c.Query("date"); date != "" {
		if catalog.NormalizeDate(date) == "" {
			httputil.RespondWithError(c, apperrors.NewBadRequest("date must be YYYY-MM-DD", nil))
			return
		}
		slots = catalog.FilterAvailable(slots, date)
	}

	if slots == nil {
		slots = []model.Slot{}
	}
	httputil.RespondWithSuccess(c, gin.H{"slots": slots})
}
