package middleware

import "github.com/gofiber/fiber/v3"

// NoStoreMiddleware đặt Cache-Control: no-store cho dữ liệu báo cáo.
// Collection có thể bị import/xóa bất cứ lúc nào nên client không được cache kết quả.
func NoStoreMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
