package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Các action audit cho thao tác ghi hàng loạt
const (
	ActionImportTraffic       = "import_traffic"
	ActionImportMapping       = "import_mapping"
	ActionReassignZone        = "reassign_zone"
	ActionReassignRetailPrice = "reassign_retail_price"
	ActionDeleteMonthRange    = "delete_month_range"
)

// LogAction ghi một hành động audit, kèm thông tin request
func LogAction(action string, c fiber.Ctx, collection string, details map[string]interface{}) {
	fields := logrus.Fields{
		"action":     action,
		"collection": collection,
		"ip":         c.IP(),
		"user_agent": c.Get(fiber.HeaderUserAgent),
		"details":    details,
	}
	if rid := c.Get(fiber.HeaderXRequestID); rid != "" {
		fields["request_id"] = rid
	} else if rid := c.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
		fields["request_id"] = rid
	}
	GetAuditLogger().WithFields(fields).Info("Audit log")
}
