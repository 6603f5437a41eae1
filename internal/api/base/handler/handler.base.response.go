// Package basehdl chứa các helper dùng chung cho HTTP handler: envelope response,
// bind + validate input, bọc recover cho handler.
package basehdl

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/malekyahyaouii/Orange/internal/api/middleware"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/global"
	"github.com/malekyahyaouii/Orange/internal/logger"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	return middleware.JSONResponse(c, statusCode, data)
}

// SafeHandlerWrapper bọc handler với recover, panic được trả về client dưới dạng lỗi SYS_001.
// Lỗi handler trả về (nếu có) cũng được chuẩn hóa thành envelope lỗi.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).Error("Handler panic")
			logger.GetErrorLogger().WithField("stack", string(debug.Stack())).Error(fmt.Sprintf("panic: %v", r))
			err = HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	if err := fn(); err != nil {
		return HandleResponse(c, nil, err)
	}
	return nil
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
//   - err != nil: envelope lỗi {code, message, details, status:"error"} với HTTP status của lỗi
//   - err == nil: envelope thành công {code:200, message, data, status:"success"}
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		if common.StatusOf(err) >= common.StatusInternalServerError {
			logger.WithRequest(c).WithError(err).Error("Request failed")
		}
		return middleware.HandleErrorResponse(c, err)
	}
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// HandleListResponse giống HandleResponse nhưng coi danh sách rỗng là "không tìm thấy" (404)
func HandleListResponse[T any](c fiber.Ctx, items []T, err error, message string, details any) error {
	if err == nil && len(items) == 0 {
		err = common.NewNotFound(message, details)
	}
	return HandleResponse(c, items, err)
}

// ParseQuery bind query string vào input rồi validate theo struct tag
func ParseQuery(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().Query(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat,
			fmt.Sprintf("Query string không đúng định dạng: %v", err), common.StatusBadRequest, nil)
	}
	return global.ValidateStruct(input)
}

// ParseRequestBody bind JSON body vào input rồi validate theo struct tag
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	if len(c.Body()) == 0 {
		return common.NewBadRequest("Thiếu request body", nil)
	}
	if err := c.Bind().JSON(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
			common.StatusBadRequest, nil)
	}
	return global.ValidateStruct(input)
}
