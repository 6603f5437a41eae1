// Package router chứa hạ tầng đăng ký route dùng chung: prefix /api/v1, group có middleware,
// và SetupRoutes gọi Register của từng domain.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/malekyahyaouii/Orange/config"
	"github.com/malekyahyaouii/Orange/internal/database"
)

// ============================================================================
// LƯU Ý FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Middleware truyền trực tiếp vào router.Get(path, mw, handler) không được gọi
// trong một số trường hợp. Luôn tạo group rồi gắn middleware qua .Use():
//
//	g := NewGroup(v1, "/trafic", middleware.NoStoreMiddleware())
//	RegisterRoute(g, "GET", "/zones/:collection", handler)
//
// Middleware gắn qua .Use() áp dụng cho mọi route nằm dưới prefix của group.
// ============================================================================

// Router giữ các dependency dùng chung mà domain router cần để tạo handler
type Router struct {
	Collections *database.CollectionRegistry
	Config      *config.Configuration
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(collections *database.CollectionRegistry, cfg *config.Configuration) *Router {
	return &Router{
		Collections: collections,
		Config:      cfg,
	}
}

// NewGroup tạo group với prefix và gắn middleware bằng .Use()
func NewGroup(router fiber.Router, prefix string, middlewares ...fiber.Handler) fiber.Router {
	group := router.Group(prefix)
	for _, mw := range middlewares {
		group.Use(mw)
	}
	return group
}

// RegisterRoute đăng ký handler theo method HTTP trên group
func RegisterRoute(group fiber.Router, method string, path string, handler fiber.Handler) {
	switch method {
	case fiber.MethodGet:
		group.Get(path, handler)
	case fiber.MethodPost:
		group.Post(path, handler)
	case fiber.MethodPut:
		group.Put(path, handler)
	case fiber.MethodDelete:
		group.Delete(path, handler)
	default:
		panic(fmt.Sprintf("router: method không được hỗ trợ %q", method))
	}
}

// RegisterRouteWithMiddleware đăng ký một route đơn lẻ có middleware riêng (tạo group theo prefix)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	RegisterRoute(NewGroup(router, prefix, middlewares...), method, path, handler)
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, r *Router, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
