package routes

import (
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"fleet_desk/internal/controllers"
	"fleet_desk/internal/middleware"
)

// Options configures the parts of the router that are not handlers.
type Options struct {
	// UploadDir is served at /uploads when set.
	UploadDir string
	// Gatherer backs /metrics; nil skips the endpoint.
	Gatherer prometheus.Gatherer
	// Redis enables login throttling when non-nil.
	Redis         *redis.Client
	LoginAttempts int64
	LoginWindow   time.Duration
	// RequestLog enables per-request access logging.
	RequestLog bool
}

func SetupRouter(ctl *controllers.Controller, opts Options) *gin.Engine {
	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if opts.RequestLog {
		r.Use(ginlog.SetLogger(
			ginlog.WithSkipPath([]string{"/metrics"}),
			ginlog.WithUTC(true),
		))
	}
	if ctl.Metrics != nil {
		r.Use(middleware.Prometheus(ctl.Metrics))
	}

	api := r.Group("/api")
	AuthRoutes(api, ctl, middleware.LoginRateLimit(opts.Redis, opts.LoginAttempts, opts.LoginWindow))
	DriverRoutes(api, ctl)
	TechnicianRoutes(api, ctl)
	VehicleRoutes(api, ctl)
	PackageBookingRoutes(api, ctl)
	if ctl.Hub != nil {
		WebSocketRoutes(r, ctl)
	}

	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return r
}
