// Package router đăng ký các route thuộc domain Mapping (/mapping).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	mappinghdl "github.com/malekyahyaouii/Orange/internal/api/mapping/handler"
	"github.com/malekyahyaouii/Orange/internal/api/middleware"
	apirouter "github.com/malekyahyaouii/Orange/internal/api/router"
)

// Register đăng ký tất cả route mapping lên v1
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := mappinghdl.NewMappingHandler(r.Collections, r.Config.MappingDelimiter())
	if err != nil {
		return fmt.Errorf("create mapping handler: %w", err)
	}

	g := apirouter.NewGroup(v1, "/mapping", middleware.NoStoreMiddleware())
	apirouter.RegisterRoute(g, fiber.MethodPost, "/upload/:collection", h.HandleUpload)
	apirouter.RegisterRoute(g, fiber.MethodGet, "/collections", h.HandleCollections)
	apirouter.RegisterRoute(g, fiber.MethodGet, "/zones/:collection", h.HandleZones)
	apirouter.RegisterRoute(g, fiber.MethodGet, "/countries/:collection", h.HandleCountries)
	apirouter.RegisterRoute(g, fiber.MethodGet, "/selected-fields/:collection", h.HandleSelectedFields)
	apirouter.RegisterRoute(g, fiber.MethodGet, "/current-zone/:collection", h.HandleCurrentZone)
	apirouter.RegisterRoute(g, fiber.MethodPut, "/zone/:collection", h.HandleReassignZone)
	apirouter.RegisterRoute(g, fiber.MethodGet, "/current-retail-price/:collection", h.HandleCurrentRetailPrice)
	apirouter.RegisterRoute(g, fiber.MethodPut, "/retail-price/:collection", h.HandleReassignRetailPrice)
	return nil
}
