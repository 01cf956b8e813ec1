package app

import (
	"bitwise74/videogen-api/app/root"
	"bitwise74/videogen-api/app/upload"
	"bitwise74/videogen-api/app/video"
	"bitwise74/videogen-api/config"
	"bitwise74/videogen-api/internal"
	"bitwise74/videogen-api/pkg/middleware"
	"bitwise74/videogen-api/pkg/validators"
	"fmt"
	"slices"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	CORSOrigins   []string
	MaxUploadSize int64
	RateLimit     int
	// CacheStore nil disables response caching
	CacheStore persist.CacheStore
	CacheTTL   time.Duration
}

func OptionsFromConfig() Options {
	o := Options{
		CORSOrigins:   config.CORSOrigins(),
		MaxUploadSize: config.MaxUploadSize(),
		RateLimit:     viper.GetInt("security.rate_limit"),
		CacheTTL:      time.Duration(viper.GetInt("cache.ttl")) * time.Second,
	}

	if viper.GetBool("cache.enabled") {
		if addr := viper.GetString("cache.redis_addr"); addr != "" {
			o.CacheStore = persist.NewRedisStore(redis.NewClient(&redis.Options{
				Addr:     addr,
				Password: viper.GetString("cache.redis_password"),
			}))
		} else {
			o.CacheStore = persist.NewMemoryStore(time.Minute)
		}
	}

	return o
}

func NewRouter(d *internal.Deps, o Options) (*gin.Engine, error) {
	if err := validators.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators, %w", err)
	}

	if o.MaxUploadSize <= 0 {
		o.MaxUploadSize = 50 << 20
	}

	router := gin.New()

	router.Use(
		cors.New(corsConfig(o.CORSOrigins)),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
		ginzap.RecoveryWithZap(zap.L(), false),
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: o.RateLimit,
			Burst:             o.RateLimit * 2,
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 8 << 20

	cached := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if o.CacheStore == nil {
			return []gin.HandlerFunc{h}
		}

		return []gin.HandlerFunc{cache.CacheByRequestURI(o.CacheStore, o.CacheTTL), h}
	}

	// GET /			-> Static acknowledgement
	router.GET("/", cached(root.Root)...)

	// GET /test			-> Reports whether the database is reachable
	router.GET("/test", cached(func(c *gin.Context) { root.Diagnostics(c, d) })...)

	m := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// POST /api/upload		-> Records metadata of an uploaded file
		m.POST("/upload", middleware.BodySizeLimiter(o.MaxUploadSize), func(c *gin.Context) { upload.Upload(c, d) })

		// GET /api/uploads		-> Lists all uploads
		m.GET("/uploads", func(c *gin.Context) { upload.List(c, d) })

		// POST /api/generate		-> Stores a request and one finished job per variation
		m.POST("/generate", middleware.BodySizeLimiter(1<<20), func(c *gin.Context) { video.Generate(c, d) })

		// GET /api/history		-> Lists generation requests, newest first
		m.GET("/history", func(c *gin.Context) { video.History(c, d) })

		// GET /api/jobs		-> Lists video jobs, newest first
		m.GET("/jobs", func(c *gin.Context) { video.Jobs(c, d) })

		// POST /api/save		-> Sets the saved flag of a job
		m.POST("/save", middleware.BodySizeLimiter(1<<20), func(c *gin.Context) { video.Save(c, d) })
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	// Browsers refuse credentials with a wildcard origin
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true

	return cfg
}
