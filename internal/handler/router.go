package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/internal/middleware"
	"github.com/noah-isme/sma-classroom/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-classroom/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-classroom/pkg/middleware/requestid"
)

type routerMetrics interface {
	metricsSource
	middleware.RequestObserver
}

// RouterConfig carries the HTTP settings of the engine.
type RouterConfig struct {
	APIPrefix      string
	StorageBackend string
	AllowedOrigins []string
	EnableDocs     bool
}

// Services bundles what the routes are served from.
type Services struct {
	Classroom classroomService
	Export    exportService
	Metrics   routerMetrics
	Storage   storageProbe
}

// NewRouter assembles the gin engine with the shared middleware chain.
func NewRouter(cfg RouterConfig, svc Services, logr *zap.Logger) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	r.Use(middleware.WithResponseMeta(cfg.StorageBackend))
	if svc.Metrics != nil {
		r.Use(middleware.Metrics(svc.Metrics))
	}

	NewMetricsHandler(svc.Metrics, svc.Storage).RegisterRoutes(r)

	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	NewClassroomHandler(svc.Classroom, logr).RegisterRoutes(api)
	NewExportHandler(svc.Export).RegisterRoutes(api)

	return r
}
