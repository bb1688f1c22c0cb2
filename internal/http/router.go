package api

import (
	"log"
	stdhttp "net/http"

	intconfig "storeapi/internal/config"
	"storeapi/internal/domain"
	h "storeapi/internal/http/handlers"
	"storeapi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.Auth([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)

		// Customer order surface
		orders := api.Group("/orders", auth)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/export-token", h.GetOrderExportToken)
		orders.GET("/:id/export", h.DownloadOrderCSV)

		// Admin order surface
		admin := api.Group("/admin", auth, middleware.RequireRoles(domain.RoleManager, domain.RoleAdmin))
		admin.GET("/orders", h.ListOrders)
		admin.GET("/orders/export", h.AdminBulkDownloadOrderCSV)
		admin.GET("/orders/:id/export", h.AdminDownloadOrderCSV)
		admin.GET("/orders/:id/invoice", h.AdminOrderInvoicePDF)
	}

	h.SetRouter(r)
	return r
}
