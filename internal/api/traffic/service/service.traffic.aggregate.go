package trafficsvc

import (
	"context"
	"sort"
	"time"

	"github.com/malekyahyaouii/Orange/internal/api/traffic/models"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/metrics"
	"github.com/malekyahyaouii/Orange/internal/utility"
)

var (
	durationFields   = []string{database.FieldDuration, database.FieldDurationAlt}
	differenceFields = []string{database.FieldDifference, database.FieldDifferenceAlt}
	operatorFields   = []string{database.FieldOperator, database.FieldOperatorAlt}
	monthFields      = []string{database.FieldMonth, database.FieldMonthAlt}
)

func fieldList(single string, groups ...[]string) []string {
	var out []string
	if single != "" {
		out = append(out, single)
	}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// totals cộng dồn theo key, giữ thứ tự xuất hiện đầu tiên của key
type totals struct {
	keys       []string
	duration   map[string]float64
	difference map[string]float64
}

func newTotals() *totals {
	return &totals{duration: make(map[string]float64), difference: make(map[string]float64)}
}

func (t *totals) add(key string, duration, difference float64) {
	if _, ok := t.duration[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.duration[key] += duration
	t.difference[key] += difference
}

// CountryTotals tổng thời lượng và Difference theo quốc gia cho một cờ margin.
// Sắp xếp theo metric (tăng dần mặc định), hòa thì theo tên quốc gia, cắt còn TopCount dòng.
func (s *TrafficService) CountryTotals(ctx context.Context, collection string, q CountryTotalsQuery) ([]models.CountryTotal, error) {
	defer metrics.ObserveAggregation("country_totals", time.Now())
	if err := q.normalize(s.topCount); err != nil {
		return nil, err
	}

	records, err := s.fetch(ctx, collection, database.Filter{Margin: &q.Margin},
		fieldList(database.FieldCountry, durationFields, differenceFields)...)
	if err != nil {
		return nil, err
	}

	t := newTotals()
	for _, r := range records {
		if r.Country == "" {
			continue
		}
		if q.DifferenceSign != "" {
			if !r.Difference.Valid {
				continue
			}
			if q.DifferenceSign == SignProfit && r.Difference.Value >= 0 {
				continue
			}
			if q.DifferenceSign == SignLoss && r.Difference.Value <= 0 {
				continue
			}
		}
		t.add(r.Country, r.Duration.OrZero(), r.Difference.OrZero())
	}

	rows := make([]models.CountryTotal, 0, len(t.keys))
	for _, k := range t.keys {
		rows = append(rows, models.CountryTotal{
			Pays:            k,
			TotalDuration:   utility.Round2(t.duration[k]),
			TotalDifference: utility.Round2(t.difference[k]),
		})
	}

	metric := func(r models.CountryTotal) float64 {
		if q.Metric == MetricDuration {
			return r.TotalDuration
		}
		return r.TotalDifference
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := metric(rows[i]), metric(rows[j])
		if a != b {
			if q.Order == OrderDesc {
				return a > b
			}
			return a < b
		}
		return rows[i].Pays < rows[j].Pays
	})
	if len(rows) > q.TopCount {
		rows = rows[:q.TopCount]
	}
	return rows, nil
}

// DurationByZone tổng thời lượng theo zone, sắp xếp theo tên zone
func (s *TrafficService) DurationByZone(ctx context.Context, collection string) ([]models.ZoneDuration, error) {
	defer metrics.ObserveAggregation("duration_by_zone", time.Now())
	records, err := s.fetch(ctx, collection, database.Filter{}, fieldList(database.FieldZone, durationFields)...)
	if err != nil {
		return nil, err
	}

	t := newTotals()
	for _, r := range records {
		if r.Zone == "" {
			continue
		}
		t.add(r.Zone, r.Duration.OrZero(), 0)
	}
	sort.Strings(t.keys)

	rows := make([]models.ZoneDuration, 0, len(t.keys))
	for _, k := range t.keys {
		rows = append(rows, models.ZoneDuration{Zone: k, TotalDuration: utility.Round2(t.duration[k])})
	}
	return rows, nil
}

// DurationByMonth tổng thời lượng theo tháng, tăng dần theo mã tháng
func (s *TrafficService) DurationByMonth(ctx context.Context, collection string) ([]models.MonthDuration, error) {
	defer metrics.ObserveAggregation("duration_by_month", time.Now())
	return s.monthSeries(ctx, collection, database.Filter{})
}

// CountryMonthSeries tổng thời lượng theo tháng của một quốc gia
func (s *TrafficService) CountryMonthSeries(ctx context.Context, collection, country string) ([]models.MonthDuration, error) {
	defer metrics.ObserveAggregation("country_month_series", time.Now())
	if err := requireValue("country", country); err != nil {
		return nil, err
	}
	return s.monthSeries(ctx, collection, database.Filter{Country: country})
}

// OperatorMonthSeries tổng thời lượng theo tháng của một operator trong một quốc gia,
// margin == nil là không lọc theo margin
func (s *TrafficService) OperatorMonthSeries(ctx context.Context, collection, country, operator string, margin *int) ([]models.MonthDuration, error) {
	defer metrics.ObserveAggregation("operator_month_series", time.Now())
	if err := requireValue("country", country); err != nil {
		return nil, err
	}
	if err := requireValue("operator", operator); err != nil {
		return nil, err
	}
	if margin != nil {
		if err := validateMargin(*margin); err != nil {
			return nil, err
		}
	}
	return s.monthSeries(ctx, collection, database.Filter{Country: country, Operator: operator, Margin: margin})
}

func (s *TrafficService) monthSeries(ctx context.Context, collection string, filter database.Filter) ([]models.MonthDuration, error) {
	records, err := s.fetch(ctx, collection, filter, fieldList("", monthFields, durationFields)...)
	if err != nil {
		return nil, err
	}

	t := newTotals()
	for _, r := range records {
		if r.Mois == "" {
			continue
		}
		t.add(r.Mois, r.Duration.OrZero(), 0)
	}
	sort.Strings(t.keys)

	rows := make([]models.MonthDuration, 0, len(t.keys))
	for _, k := range t.keys {
		rows = append(rows, models.MonthDuration{Mois: k, TotalDuration: utility.Round2(t.duration[k])})
	}
	return rows, nil
}

// DurationByOperator tổng thời lượng theo operator trong một quốc gia, operator rỗng là mọi operator
func (s *TrafficService) DurationByOperator(ctx context.Context, collection, country, operator string) ([]models.OperatorDuration, error) {
	defer metrics.ObserveAggregation("duration_by_operator", time.Now())
	if err := requireValue("country", country); err != nil {
		return nil, err
	}
	records, err := s.fetch(ctx, collection, database.Filter{Country: country, Operator: operator},
		fieldList("", operatorFields, durationFields)...)
	if err != nil {
		return nil, err
	}

	t := newTotals()
	for _, r := range records {
		if r.Operator == "" {
			continue
		}
		t.add(r.Operator, r.Duration.OrZero(), 0)
	}
	sort.Strings(t.keys)

	rows := make([]models.OperatorDuration, 0, len(t.keys))
	for _, k := range t.keys {
		rows = append(rows, models.OperatorDuration{Operateur: k, TotalDuration: utility.Round2(t.duration[k])})
	}
	return rows, nil
}

// OperatorMonthly chuỗi theo tháng (thời lượng + Difference) của từng operator trong một quốc gia.
// operator rỗng là mọi operator, margin == nil là không lọc theo margin.
func (s *TrafficService) OperatorMonthly(ctx context.Context, collection, country, operator string, margin *int) ([]models.OperatorMonthly, error) {
	defer metrics.ObserveAggregation("operator_monthly", time.Now())
	if err := requireValue("country", country); err != nil {
		return nil, err
	}
	if margin != nil {
		if err := validateMargin(*margin); err != nil {
			return nil, err
		}
	}
	records, err := s.fetch(ctx, collection, database.Filter{Country: country, Operator: operator, Margin: margin},
		fieldList("", operatorFields, monthFields, durationFields, differenceFields)...)
	if err != nil {
		return nil, err
	}

	byOperator := make(map[string]*totals)
	var operators []string
	for _, r := range records {
		if r.Operator == "" || r.Mois == "" {
			continue
		}
		t, ok := byOperator[r.Operator]
		if !ok {
			t = newTotals()
			byOperator[r.Operator] = t
			operators = append(operators, r.Operator)
		}
		t.add(r.Mois, r.Duration.OrZero(), r.Difference.OrZero())
	}
	sort.Strings(operators)

	rows := make([]models.OperatorMonthly, 0, len(operators))
	for _, op := range operators {
		t := byOperator[op]
		sort.Strings(t.keys)
		points := make([]models.MonthlyPoint, 0, len(t.keys))
		for _, m := range t.keys {
			points = append(points, models.MonthlyPoint{
				Mois:            m,
				TotalDuration:   utility.Round2(t.duration[m]),
				TotalDifference: utility.Round2(t.difference[m]),
			})
		}
		rows = append(rows, models.OperatorMonthly{Operateur: op, MonthlyData: points})
	}
	return rows, nil
}

// FilterCountries lọc tổng thời lượng theo quốc gia:
// top = N lớn nhất (giảm dần), lowest = N nhỏ nhất (tăng dần), between = trong [min, max] (giảm dần, không giới hạn N).
func (s *TrafficService) FilterCountries(ctx context.Context, collection string, q FilterCountriesQuery) ([]models.CountryDuration, error) {
	defer metrics.ObserveAggregation("filter_countries", time.Now())
	if err := q.normalize(s.topCount); err != nil {
		return nil, err
	}
	records, err := s.fetch(ctx, collection, database.Filter{}, fieldList(database.FieldCountry, durationFields)...)
	if err != nil {
		return nil, err
	}

	t := newTotals()
	for _, r := range records {
		if r.Country == "" {
			continue
		}
		t.add(r.Country, r.Duration.OrZero(), 0)
	}

	rows := make([]models.CountryDuration, 0, len(t.keys))
	for _, k := range t.keys {
		total := t.duration[k]
		if q.Mode == ModeBetween && (total < *q.MinDuration || total > *q.MaxDuration) {
			continue
		}
		rows = append(rows, models.CountryDuration{Pays: k, TotalDuration: utility.Round2(total)})
	}

	ascending := q.Mode == ModeLowest
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].TotalDuration, rows[j].TotalDuration
		if a != b {
			if ascending {
				return a < b
			}
			return a > b
		}
		return rows[i].Pays < rows[j].Pays
	})
	if q.Mode != ModeBetween && len(rows) > q.TopCount {
		rows = rows[:q.TopCount]
	}
	return rows, nil
}

// CountryOperators danh sách operator theo từng quốc gia cho một cờ margin
func (s *TrafficService) CountryOperators(ctx context.Context, collection string, margin int) ([]models.CountryOperators, error) {
	defer metrics.ObserveAggregation("country_operators", time.Now())
	if err := validateMargin(margin); err != nil {
		return nil, err
	}
	records, err := s.fetch(ctx, collection, database.Filter{Margin: &margin}, fieldList(database.FieldCountry, operatorFields)...)
	if err != nil {
		return nil, err
	}

	byCountry := make(map[string]map[string]bool)
	for _, r := range records {
		if r.Country == "" || r.Operator == "" {
			continue
		}
		ops, ok := byCountry[r.Country]
		if !ok {
			ops = make(map[string]bool)
			byCountry[r.Country] = ops
		}
		ops[r.Operator] = true
	}

	countries := make([]string, 0, len(byCountry))
	for c := range byCountry {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	rows := make([]models.CountryOperators, 0, len(countries))
	for _, c := range countries {
		ops := make([]string, 0, len(byCountry[c]))
		for op := range byCountry[c] {
			ops = append(ops, op)
		}
		sort.Strings(ops)
		rows = append(rows, models.CountryOperators{Pays: c, Operateurs: ops})
	}
	return rows, nil
}
