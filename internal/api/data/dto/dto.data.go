// Package datadto chứa DTO cho domain Data (import CSV, xem và xóa dữ liệu trafic).
package datadto

// UploadFormField tên field multipart chứa file CSV
const UploadFormField = "csvFile"

// CollectionQuery query cho GET /data/all
type CollectionQuery struct {
	Collection string `query:"collection" validate:"required,collection_name"`
}

// DeleteByMonthInput body cho DELETE /data/by-month: xóa bản ghi có Mois trong [StartMonth, EndMonth]
type DeleteByMonthInput struct {
	Collection string `json:"collection" validate:"required,collection_name"`
	StartMonth string `json:"startMonth" validate:"required,month_code"` // YYYYMM
	EndMonth   string `json:"endMonth" validate:"required,month_code"`   // YYYYMM
}
