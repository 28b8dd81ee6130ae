package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey   = "response_meta"
	requestStartKey   = "request_start"
	storageBackendKey = "storage_backend"
)

// WithResponseMeta initialises response metadata storage on the request context
// and tags it with the active storage backend.
func WithResponseMeta(backend string) gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := map[string]interface{}{}
		if backend != "" {
			meta[storageBackendKey] = backend
		}
		c.Set(responseMetaKey, meta)
		c.Set(requestStartKey, time.Now())
		c.Next()
	}
}

// ExtractMeta returns the metadata map stored on the context with the time spent so far.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	value, exists := c.Get(responseMetaKey)
	if !exists {
		return nil
	}
	meta, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(t).Milliseconds()
		}
	}
	return meta
}
