package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/handler"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/medify"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/httputil"
)

// Handler proxies appointment listings so the UI has somewhere to land
// after a booking or a duplicate-submission redirect. Status changes are
// an admin collaborator's concern and are not exposed here.
type Handler struct {
	client *medify.Client
}

func NewHandler(client *medify.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/appointments", h.ListAppointments)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	patientID := c.GetHeader("patientId")
	appointments, err := h.client.Appointments(c.Request.Context(), handler.UpstreamToken(c), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if appointments == nil {
		appointments = []model.Appointment{}
	}
	httputil.RespondWithSuccess(c, gin.H{"appointments": appointments})
}
