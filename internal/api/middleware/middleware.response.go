package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/malekyahyaouii/Orange/internal/common"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse xử lý và trả về error response cho client.
// Tách riêng khỏi basehdl để middleware dùng được mà không tạo import cycle.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"details": customErr.Details,
			"status":  "error",
		})
	}

	// Lỗi của Fiber (route không tồn tại, body quá lớn, ...) giữ nguyên HTTP status
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := common.ErrCodeValidationInput.Code
		if fiberErr.Code >= common.StatusInternalServerError {
			code = common.ErrCodeInternalServer.Code
		}
		return JSONResponse(c, fiberErr.Code, fiber.Map{
			"code":    code,
			"message": fiberErr.Message,
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeDatabase.Code,
		"message": err.Error(),
		"status":  "error",
	})
}

// ErrorHandler dùng làm fiber.Config.ErrorHandler: mọi lỗi lọt ra khỏi handler đều theo envelope chuẩn
func ErrorHandler(c fiber.Ctx, err error) error {
	return HandleErrorResponse(c, err)
}
