package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error code strings surfaced to the UI so it can branch without parsing
// message text.
var codeStrings = map[errors.ErrorCode]string{
	errors.ErrNotFound:       "not_found",
	errors.ErrBadRequest:     "bad_request",
	errors.ErrUnauthorized:   "unauthorized",
	errors.ErrForbidden:      "forbidden",
	errors.ErrInternal:       "internal",
	errors.ErrValidation:     "validation_error",
	errors.ErrNetwork:        "upstream_unreachable",
	errors.ErrRejected:       "rejected_by_server",
	errors.ErrDuplicate:      "duplicate_submission",
	errors.ErrStaleSlot:      "stale_slot",
	errors.ErrInvalidPayment: "invalid_payment_response",
}

var statusCodes = map[errors.ErrorCode]int{
	errors.ErrNotFound:       http.StatusNotFound,
	errors.ErrBadRequest:     http.StatusBadRequest,
	errors.ErrUnauthorized:   http.StatusUnauthorized,
	errors.ErrForbidden:      http.StatusForbidden,
	errors.ErrInternal:       http.StatusInternalServerError,
	errors.ErrValidation:     http.StatusBadRequest,
	errors.ErrNetwork:        http.StatusBadGateway,
	errors.ErrRejected:       http.StatusBadGateway,
	errors.ErrDuplicate:      http.StatusConflict,
	errors.ErrStaleSlot:      http.StatusConflict,
	errors.ErrInvalidPayment: http.StatusBadGateway,
}

// StatusFor maps an application error to its HTTP status code.
func StatusFor(err error) int {
	if status, ok := statusCodes[errors.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 success response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	code := errors.CodeOf(err)
	codeStr, ok := codeStrings[code]
	if !ok {
		codeStr = "internal"
	}

	c.JSON(StatusFor(err), Response{
		Success: false,
		Error: &Error{
			Code:    codeStr,
			Message: errors.MessageOf(err),
		},
	})
}
