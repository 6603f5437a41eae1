package trafficsvc

import (
	"strings"

	"github.com/malekyahyaouii/Orange/internal/common"
)

// Metric dùng để sắp xếp tổng theo quốc gia
const (
	MetricDuration   = "duration"
	MetricDifference = "difference"
)

// Lọc theo dấu của Difference: lãi khi Difference < 0, lỗ khi Difference > 0
const (
	SignProfit = "profit"
	SignLoss   = "loss"
)

// Thứ tự sắp xếp
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Chế độ lọc tổng thời lượng theo quốc gia
const (
	ModeTop     = "top"
	ModeLowest  = "lowest"
	ModeBetween = "between"
)

// Khoảng mặc định của chế độ between
const (
	DefaultMinDuration = 0
	DefaultMaxDuration = 3000000
)

// CountryTotalsQuery tham số cho CountryTotals.
// Margin và DifferenceSign là hai điều kiện độc lập.
type CountryTotalsQuery struct {
	Margin         int
	Metric         string // duration | difference (mặc định difference)
	DifferenceSign string // rỗng | profit | loss
	Order          string // asc (mặc định) | desc
	TopCount       int    // 0 = mặc định
}

func (q *CountryTotalsQuery) normalize(defaultTop int) error {
	if err := validateMargin(q.Margin); err != nil {
		return err
	}
	q.Metric = strings.ToLower(strings.TrimSpace(q.Metric))
	if q.Metric == "" {
		q.Metric = MetricDifference
	}
	if q.Metric != MetricDuration && q.Metric != MetricDifference {
		return common.NewBadRequest("metric phải là duration hoặc difference", map[string]string{"metric": q.Metric})
	}
	q.DifferenceSign = strings.ToLower(strings.TrimSpace(q.DifferenceSign))
	if q.DifferenceSign != "" && q.DifferenceSign != SignProfit && q.DifferenceSign != SignLoss {
		return common.NewBadRequest("differenceSign phải là profit hoặc loss", map[string]string{"differenceSign": q.DifferenceSign})
	}
	q.Order = strings.ToLower(strings.TrimSpace(q.Order))
	if q.Order == "" {
		q.Order = OrderAsc
	}
	if q.Order != OrderAsc && q.Order != OrderDesc {
		return common.NewBadRequest("order phải là asc hoặc desc", map[string]string{"order": q.Order})
	}
	return normalizeTop(&q.TopCount, defaultTop)
}

// FilterCountriesQuery tham số cho FilterCountries
type FilterCountriesQuery struct {
	Mode        string   // top | lowest | between
	TopCount    int      // dùng cho top/lowest, 0 = mặc định
	MinDuration *float64 // dùng cho between, nil = DefaultMinDuration
	MaxDuration *float64 // dùng cho between, nil = DefaultMaxDuration
}

func (q *FilterCountriesQuery) normalize(defaultTop int) error {
	q.Mode = strings.ToLower(strings.TrimSpace(q.Mode))
	switch q.Mode {
	case ModeTop, ModeLowest:
		return normalizeTop(&q.TopCount, defaultTop)
	case ModeBetween:
		if q.MinDuration == nil {
			v := float64(DefaultMinDuration)
			q.MinDuration = &v
		}
		if q.MaxDuration == nil {
			v := float64(DefaultMaxDuration)
			q.MaxDuration = &v
		}
		if *q.MinDuration > *q.MaxDuration {
			return common.NewBadRequest("minDuration lớn hơn maxDuration", map[string]float64{"minDuration": *q.MinDuration, "maxDuration": *q.MaxDuration})
		}
		return nil
	case "":
		return common.NewBadRequest("Thiếu tham số filterType", nil)
	default:
		return common.NewBadRequest("filterType không hợp lệ", map[string]string{"filterType": q.Mode})
	}
}

func normalizeTop(top *int, defaultTop int) error {
	if *top < 0 {
		return common.NewBadRequest("topCount không được âm", map[string]int{"topCount": *top})
	}
	if *top == 0 {
		*top = defaultTop
	}
	return nil
}
