package utility

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText chuẩn hóa text để so sánh: trim + chữ hoa
func NormalizeText(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// FormatOperator hiển thị tên operator: chữ hoa, các khoảng trắng liên tiếp thay bằng "-"
// ("orange tn" -> "ORANGE-TN")
func FormatOperator(s string) string {
	return strings.Join(strings.Fields(NormalizeText(s)), "-")
}

// MappingKey là khóa khử trùng lặp của bộ (country, operator, zone)
func MappingKey(country, operator, zone string) string {
	return NormalizeText(country) + "|" + FormatOperator(operator) + "|" + NormalizeText(zone)
}

// FoldAccents bỏ dấu ("Opérateur" -> "Operateur").
// Transformer được tạo mỗi lần gọi vì transform.Chain giữ state, không dùng chung giữa goroutine.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// HeaderToken rút gọn header CSV để so khớp: bỏ BOM, bỏ dấu, chữ thường,
// bỏ khoảng trắng, "_", "-" và "." ("durée Minute" -> "dureeminute")
func HeaderToken(raw string) string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	folded := strings.ToLower(FoldAccents(strings.TrimSpace(raw)))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) || r == '_' || r == '-' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
