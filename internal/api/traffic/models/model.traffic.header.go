package models

import (
	"sort"
	"strings"

	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/utility"
)

// Key chuẩn của các cột không có hằng trong package database
const (
	KeyAnnee            = "annee"
	KeyTrimestre        = "trimestre"
	KeySemaine          = "semaine"
	KeyJour             = "jour"
	KeyCashFlow         = "cashFlow"
	KeyTypeMarche       = "typeMarche"
	KeyBillingOperator  = "billingOperator"
	KeyBilledProduct    = "billedProduct"
	KeyCharge           = "charge"
	KeyNbrAppel         = "nbrAppel"
	KeyPrixUnitaireEuro = "prixUnitaireEuro"
	KeyPrixUnitaireTN   = "prix_unitaireTN"
)

// headerAliases: token header (đã bỏ dấu, chữ thường, bỏ khoảng trắng/_/-/.) -> key chuẩn
var headerAliases = map[string]string{
	"annee":            KeyAnnee,
	"year":             KeyAnnee,
	"trimestre":        KeyTrimestre,
	"semaine":          KeySemaine,
	"mois":             database.FieldMonth,
	"month":            database.FieldMonth,
	"jour":             KeyJour,
	"cashflow":         KeyCashFlow,
	"typemarche":       KeyTypeMarche,
	"billingoperator":  KeyBillingOperator,
	"billedproduct":    KeyBilledProduct,
	"operateur":        database.FieldOperator,
	"operator":         database.FieldOperator,
	"pays":             database.FieldCountry,
	"country":          database.FieldCountry,
	"charge":           KeyCharge,
	"nbrappel":         KeyNbrAppel,
	"dureeminute":      database.FieldDuration,
	"prixunitaireeuro": KeyPrixUnitaireEuro,
	"zone":             database.FieldZone,
	"retailprice":      database.FieldRetailPrice,
	"prixunitairetn":   KeyPrixUnitaireTN,
	"difference":       database.FieldDifference,
	"marge":            database.FieldMargin,
	"margin":           database.FieldMargin,
}

// CanonicalHeader chuẩn hóa tên cột CSV về key lưu trữ.
// Header không nhận diện được trả về nguyên văn (đã bỏ BOM và trim) với ok = false.
func CanonicalHeader(raw string) (key string, ok bool) {
	if canonical, found := headerAliases[utility.HeaderToken(raw)]; found {
		return canonical, true
	}
	return strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")), false
}

// NormalizeRow chuyển một dòng CSV thành document: key chuẩn, giá trị đã trim,
// cột marge được làm sạch thành 0/1; cột số giữ nguyên dạng chuỗi.
// Khi hai cột cùng ánh xạ về một key, giá trị khác rỗng đầu tiên (theo thứ tự tên cột) được giữ.
func NormalizeRow(raw map[string]string) database.Document {
	headers := make([]string, 0, len(raw))
	for header := range raw {
		headers = append(headers, header)
	}
	sort.Strings(headers)

	doc := make(database.Document, len(raw))
	for _, header := range headers {
		key, _ := CanonicalHeader(header)
		if key == "" || key == database.FieldID {
			continue
		}
		if existing, ok := doc[key].(string); ok && existing != "" {
			continue
		}
		doc[key] = strings.TrimSpace(raw[header])
	}
	if v, ok := doc[database.FieldMargin]; ok {
		doc[database.FieldMargin] = utility.ParseMarginTag(v)
	}
	return doc
}

// HasHeaders kiểm tra tập header (đã chuẩn hóa) chứa đủ các key yêu cầu, trả về các key còn thiếu
func HasHeaders(headers []string, required ...string) (missing []string) {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		key, _ := CanonicalHeader(h)
		present[key] = true
	}
	for _, r := range required {
		if !present[r] {
			missing = append(missing, r)
		}
	}
	return missing
}
