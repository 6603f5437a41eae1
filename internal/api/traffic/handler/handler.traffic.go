// Package traffichdl chứa HTTP handler cho domain Trafic và Roaming: danh sách giá trị
// phân biệt và các API tổng hợp thời lượng/Difference phục vụ dashboard.
package traffichdl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/malekyahyaouii/Orange/internal/api/base/handler"
	trafficsvc "github.com/malekyahyaouii/Orange/internal/api/traffic/service"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
)

// TrafficHandler xử lý các API /trafic và /roaming
type TrafficHandler struct {
	TrafficService *trafficsvc.TrafficService
}

// NewTrafficHandler tạo mới TrafficHandler
func NewTrafficHandler(source database.CollectionSource, topCount int) (*TrafficHandler, error) {
	svc, err := trafficsvc.NewTrafficService(source, topCount)
	if err != nil {
		return nil, fmt.Errorf("tạo TrafficService: %w", err)
	}
	return &TrafficHandler{TrafficService: svc}, nil
}

// param đọc path param đã trim; thiếu thì trả về lỗi 400
func param(c fiber.Ctx, name string) (string, error) {
	v := strings.TrimSpace(c.Params(name))
	if v == "" {
		return "", common.NewBadRequest(fmt.Sprintf("Thiếu tham số %s", name), nil)
	}
	return v, nil
}

// marginParam đọc margin từ path param (0 hoặc 1)
func marginParam(c fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Params("margin"))
	m, err := strconv.Atoi(raw)
	if err != nil || (m != 0 && m != 1) {
		return 0, common.NewBadRequest("Margin phải là 0 hoặc 1", map[string]string{"margin": raw})
	}
	return m, nil
}

func collectionDetails(collection string) map[string]string {
	return map[string]string{"collection": collection}
}

// HandleCollections xử lý GET /trafic/collections
func (h *TrafficHandler) HandleCollections(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		names, err := h.TrafficService.Collections(c.Context())
		return basehdl.HandleListResponse(c, names, err, "Không có collection nào", nil)
	})
}

// HandleCountries xử lý GET /trafic/countries/:collection
func (h *TrafficHandler) HandleCountries(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		items, err := h.TrafficService.Countries(c.Context(), collection, trafficsvc.Scope{})
		return basehdl.HandleListResponse(c, items, err, "Không tìm thấy quốc gia", collectionDetails(collection))
	})
}

// HandleCountriesByZone xử lý GET /trafic/countries-by-zone/:collection/:zone
func (h *TrafficHandler) HandleCountriesByZone(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		zone, err := param(c, "zone")
		if err != nil {
			return err
		}
		items, err := h.TrafficService.Countries(c.Context(), collection, trafficsvc.Scope{Zone: zone})
		return basehdl.HandleListResponse(c, items, err, "Không tìm thấy quốc gia cho zone",
			map[string]string{"collection": collection, "zone": zone})
	})
}

// HandleOperatorsByCountry xử lý GET /trafic/operators/:collection/:country
func (h *TrafficHandler) HandleOperatorsByCountry(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		country, err := param(c, "country")
		if err != nil {
			return err
		}
		items, err := h.TrafficService.Operators(c.Context(), collection, trafficsvc.Scope{Country: country})
		return basehdl.HandleListResponse(c, items, err, "Không tìm thấy operator cho quốc gia",
			map[string]string{"collection": collection, "country": country})
	})
}

// HandleZones xử lý GET /trafic/zones/:collection
func (h *TrafficHandler) HandleZones(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		items, err := h.TrafficService.Zones(c.Context(), collection, trafficsvc.Scope{})
		return basehdl.HandleListResponse(c, items, err, "Không tìm thấy zone", collectionDetails(collection))
	})
}
