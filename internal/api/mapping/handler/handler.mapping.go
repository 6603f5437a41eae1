// Package mappinghdl chứa HTTP handler cho domain Mapping: import bảng mapping,
// tra cứu và gán lại zone / retail price.
package mappinghdl

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/malekyahyaouii/Orange/internal/api/base/handler"
	mappingdto "github.com/malekyahyaouii/Orange/internal/api/mapping/dto"
	mappingsvc "github.com/malekyahyaouii/Orange/internal/api/mapping/service"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/logger"
)

// MappingHandler xử lý các API /mapping
type MappingHandler struct {
	MappingService *mappingsvc.MappingService
	delimiter      rune
}

// NewMappingHandler tạo mới MappingHandler; delimiter là ký tự phân cách file mapping upload
func NewMappingHandler(source database.CollectionSource, delimiter rune) (*MappingHandler, error) {
	svc, err := mappingsvc.NewMappingService(source)
	if err != nil {
		return nil, fmt.Errorf("tạo MappingService: %w", err)
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &MappingHandler{MappingService: svc, delimiter: delimiter}, nil
}

func collectionParam(c fiber.Ctx) (string, error) {
	v := strings.TrimSpace(c.Params("collection"))
	if v == "" {
		return "", common.NewBadRequest("Thiếu tham số collection", nil)
	}
	return v, nil
}

// HandleUpload xử lý POST /mapping/upload/:collection (multipart field csvFile)
func (h *MappingHandler) HandleUpload(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := collectionParam(c)
		if err != nil {
			return err
		}
		fh, err := c.FormFile(mappingdto.UploadFormField)
		if err != nil {
			return common.NewBadRequest("Thiếu file CSV (field csvFile)", nil)
		}
		f, err := fh.Open()
		if err != nil {
			return common.NewFormatError("Không đọc được file upload", err.Error())
		}
		defer f.Close()

		n, err := h.MappingService.ImportMappingFile(c.Context(), collection, f, h.delimiter)
		if err != nil {
			return err
		}
		logger.LogAction(logger.ActionImportMapping, c, collection, map[string]interface{}{"file": fh.Filename, "rows": n})
		return basehdl.HandleResponse(c, fiber.Map{"collection": collection, "inserted": n}, nil)
	})
}

// HandleCollections xử lý GET /mapping/collections
func (h *MappingHandler) HandleCollections(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		names, err := h.MappingService.Collections(c.Context())
		return basehdl.HandleListResponse(c, names, err, "Không có collection nào", nil)
	})
}

// HandleZones xử lý GET /mapping/zones/:collection
func (h *MappingHandler) HandleZones(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := collectionParam(c)
		if err != nil {
			return err
		}
		zones, err := h.MappingService.Zones(c.Context(), collection)
		return basehdl.HandleListResponse(c, zones, err, "Không tìm thấy zone", map[string]string{"collection": collection})
	})
}

// HandleCountries xử lý GET /mapping/countries/:collection
func (h *MappingHandler) HandleCountries(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := collectionParam(c)
		if err != nil {
			return err
		}
		countries, err := h.MappingService.Countries(c.Context(), collection)
		return basehdl.HandleListResponse(c, countries, err, "Không tìm thấy quốc gia", map[string]string{"collection": collection})
	})
}

// HandleSelectedFields xử lý GET /mapping/selected-fields/:collection?zone=&country=
func (h *MappingHandler) HandleSelectedFields(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := collectionParam(c)
		if err != nil {
			return err
		}
		var q mappingdto.SelectedFieldsQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		entries, err := h.MappingService.SelectedFields(c.Context(), collection, q.Zone, q.Country)
		return basehdl.HandleResponse(c, entries, err)
	})
}
