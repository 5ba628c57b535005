package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/sentiscan/internal/analysis"
	"github.com/spacesedan/sentiscan/internal/server/middleware"
)

// Options carries the transport configuration resolved at startup.
type Options struct {
	CORSOrigins []string
	// RequestTimeout bounds a whole request, classification included.
	// Zero means no deadline.
	RequestTimeout time.Duration
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(pipeline *analysis.Pipeline, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.CORS(opts.CORSOrigins),
	)
	if opts.RequestTimeout > 0 {
		r.Use(requestDeadline(opts.RequestTimeout))
	}

	h := NewHandler(pipeline)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/analyze_list", h.AnalyzeList)
	r.POST("/analyze_bulk", h.AnalyzeBulk)
	r.POST("/scrape", h.Scrape)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

func requestDeadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
