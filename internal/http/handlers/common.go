package handlers

import (
	"net/http"

	intconfig "storeapi/internal/config"
	"storeapi/internal/http/middleware"
	"storeapi/internal/services"

	"github.com/gin-gonic/gin"
)

var env intconfig.Env

// Configure stores startup settings the handlers need (token secret, TTL).
// Called once from the router.
func Configure(e intconfig.Env) {
	env = e
}

func tokenService() services.TokenService {
	return services.TokenService{
		Secret: []byte(env.JWTSecret),
		TTL:    env.ExportTokenTTL,
	}
}

func exportService(c *gin.Context) services.ExportService {
	return services.ExportService{
		Tokens:    tokenService(),
		RequestID: middleware.GetRequestID(c),
	}
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
