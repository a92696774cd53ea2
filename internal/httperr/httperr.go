package httperr

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HTTPError is the body of every failed API response. Code is the stable
// machine readable part; the booking widget switches on it.
type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Business codes that describe a clash with current state rather than bad
// input.
var conflictCodes = map[string]bool{
	"slot_overlaps":          true,
	"slot_booked":            true,
	"slot_unavailable":       true,
	"room_busy":              true,
	"coupon_already_applied": true,
	"coupon_code_taken":      true,
	"email_already_exists":   true,
	"cart_not_open":          true,
	"cart_already_completed": true,
	"cart_already_cancelled": true,
	"cart_cancelled":         true,
	"order_cancelled":        true,
	"order_number_exhausted": true,
}

// StatusOf maps a business code to the HTTP status it is reported with.
func StatusOf(code string) int {
	switch {
	case code == "invalid_credentials":
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case conflictCodes[code]:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// Business reports a rejected booking operation.
func Business(c *gin.Context, code string) {
	status := StatusOf(code)

	message := "Request rejected."
	switch status {
	case http.StatusUnauthorized:
		message = "Invalid email or password."
	case http.StatusNotFound:
		message = "Not found."
	case http.StatusConflict:
		message = "Conflicts with the current state."
	}
	Write(c, status, code, message)
}

// Invalid reports a body or query that failed binding.
func Invalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    "invalid_request",
		Message: "Malformed request.",
		Details: err.Error(),
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}
