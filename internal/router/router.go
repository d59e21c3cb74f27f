package router

import (
	"net/http"

	"employee-manager/internal/config"
	"employee-manager/internal/handler"
	"employee-manager/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API route tree.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Employee Management API")
	})

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// auth endpoints (no token required)
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireMinutes, cfg.Security.BcryptCost)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// everything below requires a valid bearer token
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)

	employeeHandler := handler.NewEmployeeHandler(db, cfg.App.PageSize)
	employees := protected.Group("/employees")
	employees.GET("", employeeHandler.GetAll)
	employees.GET("/search", employeeHandler.Search)
	employees.GET("/:id", employeeHandler.GetByID)
	employees.POST("/create", employeeHandler.Create)
	employees.PUT("/update/:id", employeeHandler.Update)
	employees.DELETE("/delete/:id", employeeHandler.Delete)

	exportHandler := handler.NewExportHandler(db)
	employees.GET("/export/csv", exportHandler.ExportCSV)
	employees.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
