package traffichdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/malekyahyaouii/Orange/internal/api/base/handler"
	trafficdto "github.com/malekyahyaouii/Orange/internal/api/traffic/dto"
	trafficsvc "github.com/malekyahyaouii/Orange/internal/api/traffic/service"
)

// HandleDurationByOperator xử lý GET /trafic/duration-by-operator/:collection/:country?operator=
func (h *TrafficHandler) HandleDurationByOperator(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		country, err := param(c, "country")
		if err != nil {
			return err
		}
		var q trafficdto.OperatorQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		rows, err := h.TrafficService.DurationByOperator(c.Context(), collection, country, q.Operator)
		return basehdl.HandleResponse(c, rows, err)
	})
}

// HandleFilterCountries xử lý GET /trafic/filtre: top / lowest / between trên tổng thời lượng theo quốc gia.
// URL: GET /api/v1/trafic/filtre?collection=trafic_2024&filterType=between&minDuration=40&maxDuration=150
func (h *TrafficHandler) HandleFilterCountries(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var q trafficdto.FilterCountriesQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		rows, err := h.TrafficService.FilterCountries(c.Context(), q.Collection, trafficsvc.FilterCountriesQuery{
			Mode:        q.FilterType,
			TopCount:    q.TopCount,
			MinDuration: q.MinDuration,
			MaxDuration: q.MaxDuration,
		})
		return basehdl.HandleResponse(c, rows, err)
	})
}

// HandleDurationByZone xử lý GET /trafic/duration-by-zone/:collection
func (h *TrafficHandler) HandleDurationByZone(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		rows, err := h.TrafficService.DurationByZone(c.Context(), collection)
		return basehdl.HandleResponse(c, rows, err)
	})
}

// HandleDurationByMonth xử lý GET /trafic/duration-by-month/:collection
func (h *TrafficHandler) HandleDurationByMonth(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		rows, err := h.TrafficService.DurationByMonth(c.Context(), collection)
		return basehdl.HandleListResponse(c, rows, err, "Không có dữ liệu theo tháng", collectionDetails(collection))
	})
}

// HandleOperatorMonthSeries xử lý GET /trafic/duration-by-operator-month/:collection/:country/:operator?margin=
func (h *TrafficHandler) HandleOperatorMonthSeries(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		country, err := param(c, "country")
		if err != nil {
			return err
		}
		operator, err := param(c, "operator")
		if err != nil {
			return err
		}
		var q trafficdto.MarginQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		rows, err := h.TrafficService.OperatorMonthSeries(c.Context(), collection, country, operator, q.Margin)
		return basehdl.HandleListResponse(c, rows, err, "Không có dữ liệu cho operator",
			map[string]string{"collection": collection, "country": country, "operator": operator})
	})
}

// HandleCountryOperators xử lý GET /trafic/countries-operators/:collection?margin=
func (h *TrafficHandler) HandleCountryOperators(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		var q trafficdto.RequiredMarginQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		rows, err := h.TrafficService.CountryOperators(c.Context(), collection, *q.Margin)
		return basehdl.HandleListResponse(c, rows, err, "Không tìm thấy quốc gia có operator", collectionDetails(collection))
	})
}
