package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// FilterHook lọc log entries theo module và collection.
// Entry không có field tương ứng luôn được giữ lại.
type FilterHook struct {
	modules     map[string]bool
	collections map[string]bool
}

// NewFilterHook tạo một filter hook mới với cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	return &FilterHook{
		modules:     parseFilter(cfg.FilterModules),
		collections: parseFilter(cfg.FilterCollections),
	}
}

// parseFilter parse "a,b,c" thành set (lowercase); rỗng hoặc "*" trả về nil (cho phép tất cả)
func parseFilter(filterStr string) map[string]bool {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" || filterStr == "*" {
		return nil
	}
	result := make(map[string]bool)
	for _, v := range strings.Split(filterStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result[strings.ToLower(v)] = true
		}
	}
	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị lọc bằng field "_filtered", AsyncHook sẽ bỏ qua entry đó
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	if !allowed(h.modules, entry.Data["module"]) || !allowed(h.collections, entry.Data["collection"]) {
		entry.Data[filteredKey] = true
	}
	return nil
}

func allowed(set map[string]bool, value interface{}) bool {
	if set == nil {
		return true
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return true
	}
	return set[strings.ToLower(s)]
}
