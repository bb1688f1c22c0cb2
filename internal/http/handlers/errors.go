package handlers

import (
	"net/http"

	"storeapi/internal/domain"
	"storeapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Authorization
// denials never carry partial export content.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsInvalidToken(err):
		respondError(c, http.StatusForbidden, "invalid_token", err.Error(), nil)
	case domain.IsNotOwner(err):
		respondError(c, http.StatusForbidden, "not_owner", err.Error(), nil)
	case domain.IsOrderNotCompleted(err):
		respondError(c, http.StatusForbidden, "order_not_completed", err.Error(), nil)
	case domain.IsInsufficientPrivilege(err):
		respondError(c, http.StatusForbidden, "insufficient_privilege", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsGeneration(err):
		respondError(c, http.StatusInternalServerError, "generation_failed", "export generation failed", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
