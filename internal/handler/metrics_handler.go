package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-classroom/internal/models"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
	"github.com/noah-isme/sma-classroom/pkg/response"
)

const readinessProbeKey = "__readiness_probe"

type metricsSource interface {
	Handler() http.Handler
	Snapshot() models.SystemMetrics
}

// storageProbe is satisfied by every key-value backend.
type storageProbe interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics metricsSource
	storage storageProbe
}

// NewMetricsHandler constructs a metrics handler. A nil storage probe reports ready unconditionally.
func NewMetricsHandler(metrics metricsSource, storage storageProbe) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, storage: storage}
}

// RegisterRoutes mounts the probe and metrics endpoints at the root of the engine.
func (h *MetricsHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
	r.GET("/metrics/summary", h.Summary)
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Summary godoc
// @Summary Aggregated request, command and storage metrics
// @Tags Observability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /metrics/summary [get]
func (h *MetricsHandler) Summary(c *gin.Context) {
	if h.metrics == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "metrics disabled"))
		return
	}
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reads a probe key from the storage backend; a miss still proves the backend answers.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if _, err := h.storage.Get(ctx, readinessProbeKey); err != nil && !errors.Is(err, appErrors.ErrStorageMiss) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
