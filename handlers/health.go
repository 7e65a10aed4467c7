package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Dependency is an external service the readiness probe checks.
type Dependency struct {
	Name  string
	Check func(ctx context.Context) error
}

const readyTimeout = 2 * time.Second

// RegisterHealth registers /health (liveness) and /ready (readiness).
// /ready returns 200 only when every dependency check passes.
func RegisterHealth(r gin.IRoutes, started time.Time, deps ...Dependency) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		ready := true
		status := map[string]bool{"store": true}
		for _, d := range deps {
			ok := d.Check == nil || d.Check(ctx) == nil
			status[d.Name] = ok
			ready = ready && ok
		}

		body := gin.H{"deps": status, "uptime": time.Since(started).Round(time.Second).String()}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	})
}

// RegisterFallbacks renders unknown routes and methods the same way as the
// ticket errors: {"detail": "..."}.
func RegisterFallbacks(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
	})
}
