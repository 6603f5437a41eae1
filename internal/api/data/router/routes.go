// Package router đăng ký các route thuộc domain Data (/data).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	datahdl "github.com/malekyahyaouii/Orange/internal/api/data/handler"
	"github.com/malekyahyaouii/Orange/internal/api/middleware"
	apirouter "github.com/malekyahyaouii/Orange/internal/api/router"
)

// Register đăng ký tất cả route data lên v1
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := datahdl.NewDataHandler(r.Collections, r.Config.TrafficDelimiter())
	if err != nil {
		return fmt.Errorf("create data handler: %w", err)
	}

	g := apirouter.NewGroup(v1, "/data", middleware.NoStoreMiddleware())
	apirouter.RegisterRoute(g, fiber.MethodPost, "/upload", h.HandleUpload)
	apirouter.RegisterRoute(g, fiber.MethodGet, "/all", h.HandleAll)
	apirouter.RegisterRoute(g, fiber.MethodGet, "/collections", h.HandleCollections)
	apirouter.RegisterRoute(g, fiber.MethodDelete, "/by-month", h.HandleDeleteByMonth)
	return nil
}
