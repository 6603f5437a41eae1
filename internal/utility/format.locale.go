package utility

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// localeNumberPattern: dấu tùy chọn, chữ số tùy chọn, tối đa một dấu thập phân, chữ số tùy chọn.
// Phải có ít nhất một chữ số (kiểm tra riêng).
var localeNumberPattern = regexp.MustCompile(`^[+-]?\d*\.?\d*$`)

// Number là giá trị số đã chuẩn hóa: một số thực hữu hạn hoặc "không có giá trị".
type Number struct {
	Value float64
	Valid bool
}

// OrZero trả về giá trị, hoặc 0 nếu không có giá trị (đóng góp vào tổng)
func (n Number) OrZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// Ptr trả về con trỏ tới giá trị, nil nếu không có giá trị (dùng khi serialize JSON)
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// ParseLocaleString chuyển chuỗi số kiểu châu Âu ("1234,56") thành Number.
// Chuỗi rỗng hoặc không đúng định dạng trả về Number{Valid: false}, không bao giờ trả lỗi.
func ParseLocaleString(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	s = strings.ReplaceAll(s, ",", ".")
	if !localeNumberPattern.MatchString(s) || !strings.ContainsAny(s, "0123456789") {
		return Number{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Number{Value: f, Valid: true}
}

// ParseLocaleNumber chuẩn hóa giá trị đọc từ document (string hoặc kiểu số BSON)
func ParseLocaleNumber(v interface{}) Number {
	var f float64
	switch x := v.(type) {
	case nil:
		return Number{}
	case string:
		return ParseLocaleString(x)
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case primitive.Decimal128:
		return ParseLocaleString(x.String())
	default:
		return Number{}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Number{Value: f, Valid: true}
}

// ParseMarginTag đọc cờ margin: 1 = lỗ, mọi giá trị khác (kể cả không phải số) = 0 (lãi)
func ParseMarginTag(v interface{}) int {
	n := ParseLocaleNumber(v)
	if n.Valid && n.Value == 1 {
		return 1
	}
	return 0
}

// Round2 làm tròn 2 chữ số thập phân (half away from zero)
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
