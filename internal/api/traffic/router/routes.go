// Package router đăng ký các route thuộc domain Trafic (/trafic) và Roaming (/roaming).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/malekyahyaouii/Orange/internal/api/middleware"
	apirouter "github.com/malekyahyaouii/Orange/internal/api/router"
	traffichdl "github.com/malekyahyaouii/Orange/internal/api/traffic/handler"
)

// Register đăng ký tất cả route trafic và roaming lên v1
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := traffichdl.NewTrafficHandler(r.Collections, r.Config.DefaultTopCount)
	if err != nil {
		return fmt.Errorf("create traffic handler: %w", err)
	}

	trafic := apirouter.NewGroup(v1, "/trafic", middleware.NoStoreMiddleware())
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/collections", h.HandleCollections)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/countries/:collection", h.HandleCountries)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/countries-by-zone/:collection/:zone", h.HandleCountriesByZone)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/operators/:collection/:country", h.HandleOperatorsByCountry)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/zones/:collection", h.HandleZones)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/duration-by-operator/:collection/:country", h.HandleDurationByOperator)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/filtre", h.HandleFilterCountries)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/duration-by-zone/:collection", h.HandleDurationByZone)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/duration-by-month/:collection", h.HandleDurationByMonth)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/duration-by-operator-month/:collection/:country/:operator", h.HandleOperatorMonthSeries)
	apirouter.RegisterRoute(trafic, fiber.MethodGet, "/countries-operators/:collection", h.HandleCountryOperators)

	roaming := apirouter.NewGroup(v1, "/roaming", middleware.NoStoreMiddleware())
	apirouter.RegisterRoute(roaming, fiber.MethodGet, "/by-margin", h.HandleRecordsByMargin)
	apirouter.RegisterRoute(roaming, fiber.MethodGet, "/filtre", h.HandleCountryTotals)
	apirouter.RegisterRoute(roaming, fiber.MethodGet, "/duration/:country/:collection", h.HandleCountryMonthSeries)
	apirouter.RegisterRoute(roaming, fiber.MethodGet, "/countries/:collection/:margin", h.HandleCountriesByMargin)
	apirouter.RegisterRoute(roaming, fiber.MethodGet, "/operators/:collection/:margin", h.HandleOperatorsByMargin)
	apirouter.RegisterRoute(roaming, fiber.MethodGet, "/operator-data/:country/:collection", h.HandleOperatorMonthly)

	return nil
}
