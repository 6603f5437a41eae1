// Package models chứa các model thuộc domain Mapping (bảng quốc gia / operator / zone / retail price).
package models

// MappingEntry một dòng bảng mapping sau khi khử trùng lặp.
// Pays và Zone giữ nguyên giá trị của lần xuất hiện đầu tiên; Operateur ở dạng chữ hoa nối bằng "-".
type MappingEntry struct {
	ID        string `json:"id"`
	Pays      string `json:"pays"`
	Operateur string `json:"operateur"`
	Zone      string `json:"zone"`
}

// ZonePrice retail price hiện tại của một zone
type ZonePrice struct {
	Zone        string  `json:"zone"`
	RetailPrice float64 `json:"retail_price"`
}
