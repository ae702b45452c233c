package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "rendix/docs"
	"rendix/internal/handler"
	"rendix/internal/metrics"
	"rendix/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	analyzeH *handler.AnalyzeHandler,
	imageH *handler.ImageHandler,
	exportH *handler.ExportHandler,
	driverH *handler.DriverHandler,
	healthH *handler.HealthHandler,
	m *metrics.Metrics,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Observability and API docs
	if m != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Document analysis routes
	analyze := v1.Group("/analyze")
	analyze.POST("/receipt", analyzeH.Receipt)
	analyze.POST("/fuel-delivery", analyzeH.FuelDelivery)
	analyze.POST("/reconciliation", analyzeH.Reconciliation)

	// Image upload routes
	images := v1.Group("/images")
	images.POST("", imageH.Upload)
	images.DELETE("/*key", imageH.Delete)

	// Spreadsheet export routes
	exports := v1.Group("/exports")
	exports.POST("/fuel-deliveries", exportH.FuelDeliveries)
	exports.POST("/expenses", exportH.Expenses)

	// Driver roster routes
	drivers := v1.Group("/drivers")
	drivers.GET("", driverH.List)
	drivers.PUT("", driverH.Upsert)
	drivers.DELETE("/:identifier", driverH.Deactivate)

	return r
}
