// Package mappingdto chứa DTO cho domain Mapping (bảng quốc gia → zone → giá).
package mappingdto

// UploadFormField tên field multipart chứa file mapping
const UploadFormField = "csvFile"

// SelectedFieldsQuery query cho GET /mapping/selected-fields/:collection
type SelectedFieldsQuery struct {
	Zone    string `query:"zone"`
	Country string `query:"country"`
}

// CountryQuery query cho GET /mapping/current-zone/:collection
type CountryQuery struct {
	Country string `query:"country" validate:"required"`
}

// ZoneQuery query cho GET /mapping/current-retail-price/:collection
type ZoneQuery struct {
	Zone string `query:"zone" validate:"required"`
}

// ReassignZoneInput body cho PUT /mapping/zone/:collection
type ReassignZoneInput struct {
	Country string `json:"country" validate:"required"`
	NewZone string `json:"newZone" validate:"required"`
}

// ReassignRetailPriceInput body cho PUT /mapping/retail-price/:collection
type ReassignRetailPriceInput struct {
	Zone        string   `json:"zone" validate:"required"`
	RetailPrice *float64 `json:"retail_price" validate:"required"`
}
