// Package models chứa các model thuộc domain Traffic: bản ghi trafic roaming,
// chuẩn hóa header CSV và các dòng kết quả tổng hợp.
package models

import (
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/utility"
)

// TrafficRecord là bản ghi trafic đã giải mã từ document.
// Các field số giữ dạng utility.Number (có thể không có giá trị); field lạ nằm trong Extra.
type TrafficRecord struct {
	ID              string // _id dạng hex
	Annee           string // Năm
	Trimestre       string // Quý
	Semaine         string // Tuần
	Mois            string // Tháng YYYYMM
	Jour            string // Ngày
	CashFlow        string
	TypeMarche      string
	BillingOperator string
	BilledProduct   string
	Operator        string // Opérateur
	Country         string // Pays
	Charge          string
	Zone            string

	NbrAppel         utility.Number // Số cuộc gọi
	Duration         utility.Number // "durée Minute"
	PrixUnitaireEuro utility.Number
	RetailPrice      utility.Number
	PrixUnitaireTN   utility.Number
	Difference       utility.Number // Có dấu: âm = lãi, dương = lỗ
	Margin           int            // 0 = lãi, 1 = lỗ

	Extra map[string]interface{} // Các field không thuộc schema logic
}

// knownKeys gồm mọi key được giải mã vào field của TrafficRecord (kể cả key đồng nghĩa)
var knownKeys = map[string]bool{
	database.FieldID: true, KeyAnnee: true, KeyTrimestre: true, KeySemaine: true,
	database.FieldMonth: true, database.FieldMonthAlt: true, KeyJour: true,
	KeyCashFlow: true, KeyTypeMarche: true, KeyBillingOperator: true, KeyBilledProduct: true,
	database.FieldOperator: true, database.FieldOperatorAlt: true,
	database.FieldCountry: true, KeyCharge: true, database.FieldZone: true,
	KeyNbrAppel: true, database.FieldDuration: true, database.FieldDurationAlt: true,
	KeyPrixUnitaireEuro: true, database.FieldRetailPrice: true, database.FieldRetailPriceAlt: true,
	KeyPrixUnitaireTN: true, database.FieldDifference: true, database.FieldDifferenceAlt: true,
	database.FieldMargin: true,
}

// DecodeTrafficRecord giải mã document thành TrafficRecord.
// Field đọc theo key chính xác (vd "durée Minute" có khoảng trắng), sau đó mới tới key đồng nghĩa.
func DecodeTrafficRecord(doc database.Document) TrafficRecord {
	rec := TrafficRecord{
		ID:              text(doc, database.FieldID),
		Annee:           text(doc, KeyAnnee),
		Trimestre:       text(doc, KeyTrimestre),
		Semaine:         text(doc, KeySemaine),
		Mois:            text(doc, database.FieldMonth, database.FieldMonthAlt),
		Jour:            text(doc, KeyJour),
		CashFlow:        text(doc, KeyCashFlow),
		TypeMarche:      text(doc, KeyTypeMarche),
		BillingOperator: text(doc, KeyBillingOperator),
		BilledProduct:   text(doc, KeyBilledProduct),
		Operator:        text(doc, database.FieldOperator, database.FieldOperatorAlt),
		Country:         text(doc, database.FieldCountry),
		Charge:          text(doc, KeyCharge),
		Zone:            text(doc, database.FieldZone),

		NbrAppel:         number(doc, KeyNbrAppel),
		Duration:         number(doc, database.FieldDuration, database.FieldDurationAlt),
		PrixUnitaireEuro: number(doc, KeyPrixUnitaireEuro),
		RetailPrice:      number(doc, database.FieldRetailPrice, database.FieldRetailPriceAlt),
		PrixUnitaireTN:   number(doc, KeyPrixUnitaireTN),
		Difference:       number(doc, database.FieldDifference, database.FieldDifferenceAlt),
		Margin:           utility.ParseMarginTag(doc[database.FieldMargin]),
	}

	for k, v := range doc {
		if knownKeys[k] {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]interface{})
		}
		rec.Extra[k] = v
	}
	return rec
}

// text lấy giá trị chuỗi của key đầu tiên có giá trị khác rỗng
func text(doc database.Document, keys ...string) string {
	for _, k := range keys {
		if s := database.StringValue(doc[k]); s != "" {
			return s
		}
	}
	return ""
}

// number lấy giá trị số của key đầu tiên parse được
func number(doc database.Document, keys ...string) utility.Number {
	for _, k := range keys {
		if n := utility.ParseLocaleNumber(doc[k]); n.Valid {
			return n
		}
	}
	return utility.Number{}
}
