package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/malekyahyaouii/Orange/config"
	basehdl "github.com/malekyahyaouii/Orange/internal/api/base/handler"
	datarouter "github.com/malekyahyaouii/Orange/internal/api/data/router"
	mappingrouter "github.com/malekyahyaouii/Orange/internal/api/mapping/router"
	"github.com/malekyahyaouii/Orange/internal/api/middleware"
	apirouter "github.com/malekyahyaouii/Orange/internal/api/router"
	trafficrouter "github.com/malekyahyaouii/Orange/internal/api/traffic/router"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/logger"
	"github.com/malekyahyaouii/Orange/internal/metrics"
)

// skipInfraPath các path hạ tầng không tính rate limit / metrics
func skipInfraPath(c fiber.Ctx) bool {
	p := c.Path()
	return p == "/health" || p == "/metrics" || p == "/api/v1/system/health"
}

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết và đăng ký toàn bộ route
func InitFiberApp(cfg *config.Configuration, reg *database.CollectionRegistry) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "Roaming Dashboard API",
		ServerHeader:  "Roaming Dashboard API",
		StrictRouting: true,  // /foo và /foo/ là khác nhau
		CaseSensitive: true,  // /Foo và /foo là khác nhau
		UnescapePath:  true,  // Tên quốc gia/operator trong path có thể chứa khoảng trắng
		Immutable:     true,  // Params/query được copy, tên collection được giữ trong registry

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE
		// =========================================
		BodyLimit:       cfg.BodyLimitMB * 1024 * 1024, // File CSV upload
		Concurrency:     256 * 1024,
		ReadBufferSize:  8192, // Header dài (cookie của dashboard)
		WriteBufferSize: 4096,

		// =========================================
		// 3. CẤU HÌNH TIMEOUT
		// =========================================
		ReadTimeout:  60 * time.Second,  // Upload file lớn
		WriteTimeout: 120 * time.Second, // Tổng hợp trên collection lớn
		IdleTimeout:  120 * time.Second,

		// =========================================
		// 4. CẤU HÌNH ERROR HANDLING
		// =========================================
		ErrorHandler: func(c fiber.Ctx, err error) error {
			if common.StatusOf(err) >= common.StatusInternalServerError {
				logger.WithRequest(c).WithError(err).Error("Request error")
			}
			return middleware.ErrorHandler(c, err)
		},
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID Middleware - Tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	// 2. CORS Middleware - đặt ở đầu để xử lý preflight trước các middleware khác
	allowOrigins := []string{"*"}
	allowCredentials := cfg.CORS_AllowCredentials
	if cfg.CORS_Origins != "*" {
		allowOrigins = strings.Split(cfg.CORS_Origins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	} else {
		// Wildcard origin không được đi kèm credentials
		allowCredentials = false
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Requested-With"},
		AllowCredentials: allowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security Headers Middleware
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Metrics Middleware
	if cfg.MetricsEnabled {
		observe := metrics.Middleware()
		app.Use(func(c fiber.Ctx) error {
			if skipInfraPath(c) {
				return c.Next()
			}
			return observe(c)
		})
	}

	// 5. Rate Limiting Middleware - chỉ bật khi enable và Max > 0
	log := logger.GetAppLogger()
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return middleware.JSONResponse(c, fiber.StatusTooManyRequests, fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": common.MsgTooManyRequests,
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return skipInfraPath(c) || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 6. Recover Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	// =========================================
	// ROUTES
	// =========================================
	systemHandler, err := basehdl.NewSystemHandler(reg, cfg.StoreDriver)
	if err != nil {
		return nil, fmt.Errorf("create system handler: %w", err)
	}
	app.Get("/health", systemHandler.HandleHealth)
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	r := apirouter.NewRouter(reg, cfg)
	err = apirouter.SetupRoutes(app, r,
		func(v1 fiber.Router, _ *apirouter.Router) error {
			v1.Get("/system/health", systemHandler.HandleHealth)
			return nil
		},
		datarouter.Register,
		trafficrouter.Register,
		mappingrouter.Register,
	)
	if err != nil {
		return nil, fmt.Errorf("setup routes: %w", err)
	}
	return app, nil
}
