// Package trafficdto chứa DTO cho domain Trafic (query string của các API tổng hợp).
package trafficdto

// MarginQuery query margin tùy chọn (0 hoặc 1)
type MarginQuery struct {
	Margin *int `query:"margin" validate:"omitempty,oneof=0 1"`
}

// RecordsByMarginQuery query cho GET /roaming/by-margin
type RecordsByMarginQuery struct {
	Collection string `query:"collection" validate:"required,collection_name"`
	Margin     *int   `query:"margin" validate:"required,oneof=0 1"`
}

// CountryTotalsQuery query cho GET /roaming/filtre: tổng theo quốc gia
type CountryTotalsQuery struct {
	Collection     string `query:"collection" validate:"required,collection_name"`
	Margin         *int   `query:"margin" validate:"required,oneof=0 1"`                // Tag lãi/lỗ của bản ghi
	Metric         string `query:"metric" validate:"omitempty,oneof=duration difference"` // Mặc định difference
	DifferenceSign string `query:"differenceSign" validate:"omitempty,oneof=profit loss"` // Lọc theo dấu Difference
	Order          string `query:"order" validate:"omitempty,oneof=asc desc"`             // Mặc định asc
	TopCount       int    `query:"topCount" validate:"gte=0"`                             // 0 = mặc định
}

// FilterCountriesQuery query cho GET /trafic/filtre
type FilterCountriesQuery struct {
	Collection  string   `query:"collection" validate:"required,collection_name"`
	FilterType  string   `query:"filterType"` // top | lowest | between, kiểm tra ở service
	TopCount    int      `query:"topCount" validate:"gte=0"`
	MinDuration *float64 `query:"minDuration"`
	MaxDuration *float64 `query:"maxDuration"`
}

// OperatorQuery query operator tùy chọn cho GET /trafic/duration-by-operator
type OperatorQuery struct {
	Operator string `query:"operator"`
}

// OperatorDataQuery query cho GET /roaming/operator-data
type OperatorDataQuery struct {
	Margin   *int   `query:"margin" validate:"omitempty,oneof=0 1"`
	Operator string `query:"operator"`
}

// CountryScopeQuery query country tùy chọn cho GET /roaming/operators
type CountryScopeQuery struct {
	Country string `query:"country"`
}

// RequiredMarginQuery query margin bắt buộc cho GET /trafic/countries-operators
type RequiredMarginQuery struct {
	Margin *int `query:"margin" validate:"required,oneof=0 1"`
}
