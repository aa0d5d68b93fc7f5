package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/handler"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/medify"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/httputil"
)

// Handler proxies the caller's patient list from the backend. Patient
// CRUD itself is an external collaborator; the booking screen only needs
// the list to pick from.
type Handler struct {
	client *medify.Client
}

func NewHandler(client *medify.Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/patients", h.ListPatients)
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.client.Patients(c.Request.Context(), handler.UpstreamToken(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if patients == nil {
		patients = []model.Patient{}
	}
	httputil.RespondWithSuccess(c, gin.H{"patients": patients})
}
