package mappinghdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/malekyahyaouii/Orange/internal/api/base/handler"
	mappingdto "github.com/malekyahyaouii/Orange/internal/api/mapping/dto"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/logger"
)

// updateResponse trả về 404 khi không bản ghi nào khớp, ngược lại trả cả matchedCount và modifiedCount
func updateResponse(c fiber.Ctx, res database.UpdateResult, err error, message string, details any) error {
	if err == nil && res.Matched == 0 {
		err = common.NewNotFound(message, details)
	}
	return basehdl.HandleResponse(c, res, err)
}

// HandleCurrentZone xử lý GET /mapping/current-zone/:collection?country=
func (h *MappingHandler) HandleCurrentZone(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := collectionParam(c)
		if err != nil {
			return err
		}
		var q mappingdto.CountryQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		zone, err := h.MappingService.CurrentZone(c.Context(), collection, q.Country)
		if err != nil {
			return err
		}
		return basehdl.HandleResponse(c, fiber.Map{"country": q.Country, "zone": zone}, nil)
	})
}

// HandleReassignZone xử lý PUT /mapping/zone/:collection, body {country, newZone}
func (h *MappingHandler) HandleReassignZone(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := collectionParam(c)
		if err != nil {
			return err
		}
		var input mappingdto.ReassignZoneInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return err
		}
		res, err := h.MappingService.ReassignZone(c.Context(), collection, input.Country, input.NewZone)
		if err == nil {
			logger.LogAction(logger.ActionReassignZone, c, collection, map[string]interface{}{
				"country": input.Country, "newZone": input.NewZone,
				"matched": res.Matched, "modified": res.Modified,
			})
		}
		return updateResponse(c, res, err, "Không tìm thấy bản ghi của quốc gia", map[string]string{"country": input.Country})
	})
}

// HandleCurrentRetailPrice xử lý GET /mapping/current-retail-price/:collection?zone=
func (h *MappingHandler) HandleCurrentRetailPrice(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := collectionParam(c)
		if err != nil {
			return err
		}
		var q mappingdto.ZoneQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		price, err := h.MappingService.CurrentRetailPrice(c.Context(), collection, q.Zone)
		return basehdl.HandleResponse(c, price, err)
	})
}

// HandleReassignRetailPrice xử lý PUT /mapping/retail-price/:collection, body {zone, retail_price}
func (h *MappingHandler) HandleReassignRetailPrice(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := collectionParam(c)
		if err != nil {
			return err
		}
		var input mappingdto.ReassignRetailPriceInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return err
		}
		res, err := h.MappingService.ReassignRetailPrice(c.Context(), collection, input.Zone, *input.RetailPrice)
		if err == nil {
			logger.LogAction(logger.ActionReassignRetailPrice, c, collection, map[string]interface{}{
				"zone": input.Zone, "retail_price": *input.RetailPrice,
				"matched": res.Matched, "modified": res.Modified,
			})
		}
		return updateResponse(c, res, err, "Không tìm thấy bản ghi của zone", map[string]string{"zone": input.Zone})
	})
}
