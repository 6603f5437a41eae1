package traffichdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/malekyahyaouii/Orange/internal/api/base/handler"
	trafficdto "github.com/malekyahyaouii/Orange/internal/api/traffic/dto"
	trafficsvc "github.com/malekyahyaouii/Orange/internal/api/traffic/service"
)

// HandleRecordsByMargin xử lý GET /roaming/by-margin?collection=&margin=
func (h *TrafficHandler) HandleRecordsByMargin(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var q trafficdto.RecordsByMarginQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		docs, err := h.TrafficService.RecordsByMargin(c.Context(), q.Collection, *q.Margin)
		return basehdl.HandleResponse(c, docs, err)
	})
}

// HandleCountryTotals xử lý GET /roaming/filtre: tổng theo quốc gia cho một cờ margin.
// margin (tag lãi/lỗ) và differenceSign (dấu của Difference) là hai điều kiện độc lập.
// URL: GET /api/v1/roaming/filtre?collection=trafic_2024&margin=1&metric=duration&order=desc&topCount=10
func (h *TrafficHandler) HandleCountryTotals(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var q trafficdto.CountryTotalsQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		rows, err := h.TrafficService.CountryTotals(c.Context(), q.Collection, trafficsvc.CountryTotalsQuery{
			Margin:         *q.Margin,
			Metric:         q.Metric,
			DifferenceSign: q.DifferenceSign,
			Order:          q.Order,
			TopCount:       q.TopCount,
		})
		return basehdl.HandleResponse(c, rows, err)
	})
}

// HandleCountryMonthSeries xử lý GET /roaming/duration/:country/:collection
func (h *TrafficHandler) HandleCountryMonthSeries(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		country, err := param(c, "country")
		if err != nil {
			return err
		}
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		rows, err := h.TrafficService.CountryMonthSeries(c.Context(), collection, country)
		return basehdl.HandleListResponse(c, rows, err, "Không có dữ liệu cho quốc gia",
			map[string]string{"collection": collection, "country": country})
	})
}

// HandleCountriesByMargin xử lý GET /roaming/countries/:collection/:margin
func (h *TrafficHandler) HandleCountriesByMargin(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		margin, err := marginParam(c)
		if err != nil {
			return err
		}
		items, err := h.TrafficService.Countries(c.Context(), collection, trafficsvc.Scope{Margin: &margin})
		return basehdl.HandleListResponse(c, items, err, "Không tìm thấy quốc gia cho margin",
			map[string]interface{}{"collection": collection, "margin": margin})
	})
}

// HandleOperatorsByMargin xử lý GET /roaming/operators/:collection/:margin?country=
func (h *TrafficHandler) HandleOperatorsByMargin(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		margin, err := marginParam(c)
		if err != nil {
			return err
		}
		var q trafficdto.CountryScopeQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		items, err := h.TrafficService.Operators(c.Context(), collection, trafficsvc.Scope{Country: q.Country, Margin: &margin})
		return basehdl.HandleListResponse(c, items, err, "Không tìm thấy operator",
			map[string]interface{}{"collection": collection, "margin": margin, "country": q.Country})
	})
}

// HandleOperatorMonthly xử lý GET /roaming/operator-data/:country/:collection?margin=&operator=
func (h *TrafficHandler) HandleOperatorMonthly(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		country, err := param(c, "country")
		if err != nil {
			return err
		}
		collection, err := param(c, "collection")
		if err != nil {
			return err
		}
		var q trafficdto.OperatorDataQuery
		if err := basehdl.ParseQuery(c, &q); err != nil {
			return err
		}
		rows, err := h.TrafficService.OperatorMonthly(c.Context(), collection, country, q.Operator, q.Margin)
		return basehdl.HandleListResponse(c, rows, err, "Không có dữ liệu operator theo tháng",
			map[string]string{"collection": collection, "country": country})
	})
}
