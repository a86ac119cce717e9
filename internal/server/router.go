package server

import (
	"context"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/auth"
	"github.com/fekuna/omnipos-tyre-service/internal/metrics"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/fekuna/omnipos-tyre-service/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RouteRegistrar is implemented by every HTTP handler.
type RouteRegistrar interface {
	Register(rg *gin.RouterGroup)
}

type Options struct {
	ServiceName string
	CORSOrigins []string
	Tokens      *auth.TokenManager
	Metrics     *metrics.Metrics
	Logger      logger.ZapLogger
	// Ping reports whether the database is reachable.
	Ping func(ctx context.Context) error

	Public  []RouteRegistrar // mounted under /api without auth
	Private []RouteRegistrar // mounted under /api behind JWTMiddleware
}

func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(opts.Logger),
		otelgin.Middleware(opts.ServiceName),
		opts.Metrics.Middleware(),
		middleware.RequestLogger(opts.Logger),
		cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	r.GET("/health", health(opts.Ping))
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	api := r.Group("/api")
	for _, h := range opts.Public {
		h.Register(api)
	}

	private := api.Group("", auth.JWTMiddleware(opts.Tokens))
	for _, h := range opts.Private {
		h.Register(private)
	}

	return r
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
