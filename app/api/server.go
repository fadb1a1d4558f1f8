package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type ServerOptions struct {
	Prod      bool
	RateLimit float64 // requests per second per client IP
	RateBurst int
}

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, opts ServerOptions) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)
	useFormTagNames()

	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = int(opts.RateLimit)
	}

	r := gin.New()

	r.Use(requestIDMiddleware())

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] %s \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Keys[requestIDKey],
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	if opts.Prod {
		r.Use(httpsRedirectMiddleware())
	}

	r.Use(corsMiddleware())
	r.Use(rateLimitMiddleware(newIPRateLimiter(opts.RateLimit, opts.RateBurst)))

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	imagery := r.Group("/imagery")
	{
		imagery.GET("/epic", handler.GetEPICImagery)
		imagery.GET("/mars-photo", handler.GetMarsPhotos)
		imagery.GET("/mars-photo/meta", handler.GetMarsPhotoMeta)
	}

	news := r.Group("/news")
	{
		news.GET("", handler.GetNews)
		news.GET("/industry", handler.GetIndustryNews)
		news.GET("/science", handler.GetScienceNews)
	}

	r.GET("/health", handler.GetHealth)
	r.GET("/", handler.GetRoot)

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
