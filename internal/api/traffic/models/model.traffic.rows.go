package models

// CountryTotal tổng theo quốc gia (bảng roaming theo margin)
type CountryTotal struct {
	Pays            string  `json:"Pays"`
	TotalDuration   float64 `json:"totalDuration"`
	TotalDifference float64 `json:"totalDifference"`
}

// CountryDuration tổng thời lượng theo quốc gia (bộ lọc top/lowest/between)
type CountryDuration struct {
	Pays          string  `json:"Pays"`
	TotalDuration float64 `json:"totalDuration"`
}

// ZoneDuration tổng thời lượng theo zone
type ZoneDuration struct {
	Zone          string  `json:"zone"`
	TotalDuration float64 `json:"totalDuration"`
}

// MonthDuration tổng thời lượng theo tháng
type MonthDuration struct {
	Mois          string  `json:"mois"`
	TotalDuration float64 `json:"totalDuration"`
}

// OperatorDuration tổng thời lượng theo operator
type OperatorDuration struct {
	Operateur     string  `json:"operateur"`
	TotalDuration float64 `json:"totalDuration"`
}

// MonthlyPoint một điểm trong chuỗi theo tháng của operator
type MonthlyPoint struct {
	Mois            string  `json:"mois"`
	TotalDuration   float64 `json:"totalDuration"`
	TotalDifference float64 `json:"totalDifference"`
}

// OperatorMonthly chuỗi theo tháng của một operator
type OperatorMonthly struct {
	Operateur   string         `json:"operateur"`
	MonthlyData []MonthlyPoint `json:"monthlyData"`
}

// CountryOperators danh sách operator của một quốc gia
type CountryOperators struct {
	Pays       string   `json:"Pays"`
	Operateurs []string `json:"operateurs"`
}
