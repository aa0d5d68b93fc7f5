package payment

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/handler"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/payment"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/httputil"
)

type Handler struct {
	service *payment.Service
}

func NewHandler(service *payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings/:id/payment", h.InitiatePayment)
}

// RegisterReturnRoutes mounts the provider return pages. They are hit by
// a browser redirect carrying no session, so they live outside auth.
func (h *Handler) RegisterReturnRoutes(r *gin.RouterGroup) {
	r.GET("/payments/return/success", h.ReturnSuccess)
	r.POST("/payments/return/success", h.ReturnSuccess)
	r.GET("/payments/return/failure", h.ReturnFailure)
	r.POST("/payments/return/failure", h.ReturnFailure)
}

// InitiatePayment starts the pay-now branch: it obtains redirect
// parameters for the appointment and answers either an auto-submitting
// HTML page (for browsers) or the raw form description (for API
// clients), depending on Accept. Pay-later is simply not calling this.
func (h *Handler) InitiatePayment(c *gin.Context) {
	form, err := h.service.Initiate(c.Request.Context(), handler.UpstreamToken(c), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		page, renderErr := h.service.RenderRedirect(form)
		if renderErr != nil {
			httputil.RespondWithError(c, renderErr)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
		return
	}

	httputil.RespondWithSuccess(c, form)
}

func (h *Handler) ReturnSuccess(c *gin.Context) {
	h.handleReturn(c, "success")
}

func (h *Handler) ReturnFailure(c *gin.Context) {
	h.handleReturn(c, "failure")
}

func (h *Handler) handleReturn(c *gin.Context, outcome string) {
	params := payment.ReturnParams{
		Status:      c.PostForm("status"),
		Key:         c.PostForm("key"),
		TxnID:       c.PostForm("txnid"),
		Amount:      c.PostForm("amount"),
		ProductInfo: c.PostForm("productinfo"),
		FirstName:   c.PostForm("firstname"),
		Email:       c.PostForm("email"),
		Hash:        c.PostForm("hash"),
		UDF: [5]string{
			c.PostForm("udf1"),
			c.PostForm("udf2"),
			c.PostForm("udf3"),
			c.PostForm("udf4"),
			c.PostForm("udf5"),
		},
	}
	if params.TxnID == "" {
		params.TxnID = c.Query("txnid")
		params.Status = c.Query("status")
	}

	hashOK := h.service.VerifyReturnHash(params)
	if outcome == "success" && hashOK {
		// The backend records the payment from the provider's own
		// parameters, forwarded verbatim.
		values := c.Request.PostForm
		if len(values) == 0 {
			values = c.Request.URL.Query()
		}
		h.service.ForwardSuccess(c.Request.Context(), values)
	}
	h.service.RecordReturn(outcome, params, hashOK)

	c.JSON(http.StatusOK, gin.H{
		"status":        outcome,
		"txnid":         params.TxnID,
		"hash_verified": hashOK,
	})
}
