// Package datahdl chứa HTTP handler cho domain Data: upload file trafic CSV,
// xem toàn bộ dữ liệu, liệt kê collection và xóa theo khoảng tháng.
package datahdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/malekyahyaouii/Orange/internal/api/base/handler"
	datadto "github.com/malekyahyaouii/Orange/internal/api/data/dto"
	datasvc "github.com/malekyahyaouii/Orange/internal/api/data/service"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/logger"
)

// DataHandler xử lý các API /data
type DataHandler struct {
	DataService *datasvc.DataService
}

// NewDataHandler tạo mới DataHandler; delimiter là ký tự phân cách file trafic
func NewDataHandler(source database.CollectionSource, delimiter rune) (*DataHandler, error) {
	svc, err := datasvc.NewDataService(source, delimiter)
	if err != nil {
		return nil, fmt.Errorf("tạo DataService: %w", err)
	}
	return &DataHandler{DataService: svc}, nil
}

// HandleUpload xử lý POST /data/upload: tên collection lấy từ tên file (bỏ phần mở rộng)
func (h *DataHandler) HandleUpload(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		fh, err := c.FormFile(datadto.UploadFormField)
		if err != nil {
			return common.NewBadRequest("Thiếu file CSV (field csvFile)", nil)
		}
		f, err := fh.Open()
		if err != nil {
			return common.NewFormatError("Không đọc được file upload", err.Error())
		}
		defer f.Close()

		result, err := h.DataService.ImportCSV(c.Context(), fh.Filename, f)
		if err != nil {
			return err
		}
		logger.LogAction(logger.ActionImportTraffic, c, result.Collection, map[string]interface{}{
			"file": fh.Filename, "size": fh.Size, "rows": result.Inserted,
		})
		return basehdl.HandleResponse(c, result, nil)
	})
}

// HandleAll xử lý GET /data/all?collection=
func (h *DataHandler) HandleAll(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var q datadto.CollectionQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		docs, err := h.DataService.All(c.Context(), q.Collection)
		return basehdl.HandleResponse(c, docs, err)
	})
}

// HandleCollections xử lý GET /data/collections
func (h *DataHandler) HandleCollections(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		names, err := h.DataService.Collections(c.Context())
		return basehdl.HandleListResponse(c, names, err, "Không có collection nào", nil)
	})
}

// HandleDeleteByMonth xử lý DELETE /data/by-month, body {collection, startMonth, endMonth}
func (h *DataHandler) HandleDeleteByMonth(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input datadto.DeleteByMonthInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return err
		}
		deleted, err := h.DataService.DeleteByMonthRange(c.Context(), input.Collection, input.StartMonth, input.EndMonth)
		if err != nil {
			return err
		}
		logger.LogAction(logger.ActionDeleteMonthRange, c, input.Collection, map[string]interface{}{
			"startMonth": input.StartMonth, "endMonth": input.EndMonth, "deleted": deleted,
		})
		return basehdl.HandleResponse(c, fiber.Map{"deletedCount": deleted}, nil)
	})
}
