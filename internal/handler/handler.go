package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/middleware"
)

// Handler carries the endpoints that belong to no single feature area.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UpstreamToken returns the raw bearer token to forward to the backend.
func UpstreamToken(c *gin.Context) string {
	return c.GetString(middleware.ContextUpstreamToken)
}

// AccountID returns the authenticated account identifier.
func AccountID(c *gin.Context) string {
	return c.GetString(middleware.ContextAccountID)
}

// AccountEmail returns the authenticated account's email, if the token
// carried one.
func AccountEmail(c *gin.Context) string {
	return c.GetString(middleware.ContextAccountEmail)
}
