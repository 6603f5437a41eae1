package trafficsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malekyahyaouii/Orange/internal/api/traffic/models"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
)

const testCollection = "trafic_test"

func newTestService(t *testing.T, docs ...database.Document) *TrafficService {
	t.Helper()
	reg := database.NewCollectionRegistry(database.NewMemoryBackend())
	coll, err := reg.Collection(testCollection)
	require.NoError(t, err)
	_, err = coll.InsertMany(context.Background(), docs)
	require.NoError(t, err)

	svc, err := NewTrafficService(reg, 0)
	require.NoError(t, err)
	return svc
}

func doc(country, zone, month, duration, difference string, margin int) database.Document {
	return database.Document{
		database.FieldCountry:    country,
		database.FieldZone:       zone,
		database.FieldMonth:      month,
		database.FieldDuration:   duration,
		database.FieldDifference: difference,
		database.FieldMargin:     margin,
	}
}

func isBadRequest(err error) bool {
	var appErr *common.Error
	return errors.As(err, &appErr) && appErr.StatusCode == common.StatusBadRequest
}

func TestDurationByZone_SumsLocaleNumbers(t *testing.T) {
	svc := newTestService(t,
		doc("FR", "A", "202401", "10,5", "", 0),
		doc("DE", "A", "202401", "5", "", 0),
		doc("TN", "B", "202402", "3,25", "", 1),
	)

	rows, err := svc.DurationByZone(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, []models.ZoneDuration{
		{Zone: "A", TotalDuration: 15.5},
		{Zone: "B", TotalDuration: 3.25},
	}, rows)
}

func TestDurationByZone_AbsentDurationCountsAsZero(t *testing.T) {
	svc := newTestService(t,
		doc("FR", "A", "202401", "", "", 0),
		doc("FR", "A", "202401", "abc", "", 0),
		doc("FR", "A", "202401", "2", "", 0),
	)

	rows, err := svc.DurationByZone(context.Background(), testCollection)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].TotalDuration)
}

func TestDurationByMonth_AscendingAndIdempotent(t *testing.T) {
	svc := newTestService(t,
		doc("FR", "A", "202403", "1", "", 0),
		doc("FR", "A", "202401", "2", "", 0),
		doc("DE", "A", "202401", "3", "", 0),
		database.Document{database.FieldCountry: "TN", database.FieldMonth: int32(202402), database.FieldDurationAlt: 4.0},
	)

	first, err := svc.DurationByMonth(context.Background(), testCollection)
	require.NoError(t, err)
	second, err := svc.DurationByMonth(context.Background(), testCollection)
	require.NoError(t, err)

	assert.Equal(t, []models.MonthDuration{
		{Mois: "202401", TotalDuration: 5},
		{Mois: "202402", TotalDuration: 4},
		{Mois: "202403", TotalDuration: 1},
	}, first)
	assert.Equal(t, first, second)
}

func TestFilterCountries_Top(t *testing.T) {
	svc := newTestService(t,
		doc("FR", "A", "202401", "100", "", 0),
		doc("DE", "A", "202401", "50", "", 0),
		doc("TN", "B", "202401", "200", "", 0),
	)

	rows, err := svc.FilterCountries(context.Background(), testCollection, FilterCountriesQuery{Mode: ModeTop, TopCount: 1})
	require.NoError(t, err)
	assert.Equal(t, []models.CountryDuration{{Pays: "TN", TotalDuration: 200}}, rows)
}

func TestFilterCountries_LowestAndBetween(t *testing.T) {
	svc := newTestService(t,
		doc("FR", "A", "202401", "100", "", 0),
		doc("DE", "A", "202401", "50", "", 0),
		doc("TN", "B", "202401", "200", "", 0),
	)
	ctx := context.Background()

	lowest, err := svc.FilterCountries(ctx, testCollection, FilterCountriesQuery{Mode: ModeLowest, TopCount: 2})
	require.NoError(t, err)
	assert.Equal(t, []models.CountryDuration{{Pays: "DE", TotalDuration: 50}, {Pays: "FR", TotalDuration: 100}}, lowest)

	lo, hi := 40.0, 150.0
	between, err := svc.FilterCountries(ctx, testCollection, FilterCountriesQuery{Mode: ModeBetween, MinDuration: &lo, MaxDuration: &hi})
	require.NoError(t, err)
	assert.Equal(t, []models.CountryDuration{{Pays: "FR", TotalDuration: 100}, {Pays: "DE", TotalDuration: 50}}, between)

	all, err := svc.FilterCountries(ctx, testCollection, FilterCountriesQuery{Mode: ModeBetween})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFilterCountries_InvalidMode(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.FilterCountries(context.Background(), testCollection, FilterCountriesQuery{Mode: "median"})
	assert.True(t, isBadRequest(err))

	_, err = svc.FilterCountries(context.Background(), testCollection, FilterCountriesQuery{})
	assert.True(t, isBadRequest(err))

	lo, hi := 10.0, 1.0
	_, err = svc.FilterCountries(context.Background(), testCollection, FilterCountriesQuery{Mode: ModeBetween, MinDuration: &lo, MaxDuration: &hi})
	assert.True(t, isBadRequest(err))
}

func TestCountryTotals_MarginAndSignAreIndependent(t *testing.T) {
	svc := newTestService(t,
		doc("FR", "A", "202401", "10", "-5,5", 1),
		doc("FR", "A", "202401", "20", "3", 1),
		doc("DE", "A", "202401", "7", "-1", 1),
		doc("TN", "B", "202401", "99", "-100", 0),
		doc("IT", "B", "202401", "1", "", 1),
	)
	ctx := context.Background()

	rows, err := svc.CountryTotals(ctx, testCollection, CountryTotalsQuery{Margin: 1})
	require.NoError(t, err)
	assert.Equal(t, []models.CountryTotal{
		{Pays: "FR", TotalDuration: 30, TotalDifference: -2.5},
		{Pays: "DE", TotalDuration: 7, TotalDifference: -1},
		{Pays: "IT", TotalDuration: 1, TotalDifference: 0},
	}, rows)

	profit, err := svc.CountryTotals(ctx, testCollection, CountryTotalsQuery{Margin: 1, DifferenceSign: SignProfit})
	require.NoError(t, err)
	assert.Equal(t, []models.CountryTotal{
		{Pays: "FR", TotalDuration: 10, TotalDifference: -5.5},
		{Pays: "DE", TotalDuration: 7, TotalDifference: -1},
	}, profit)

	loss, err := svc.CountryTotals(ctx, testCollection, CountryTotalsQuery{Margin: 1, DifferenceSign: SignLoss, Metric: MetricDuration, Order: OrderDesc})
	require.NoError(t, err)
	assert.Equal(t, []models.CountryTotal{{Pays: "FR", TotalDuration: 20, TotalDifference: 3}}, loss)
}

func TestCountryTotals_TopCountAndValidation(t *testing.T) {
	svc := newTestService(t,
		doc("FR", "A", "202401", "10", "1", 0),
		doc("DE", "A", "202401", "20", "2", 0),
		doc("TN", "A", "202401", "30", "3", 0),
	)
	ctx := context.Background()

	rows, err := svc.CountryTotals(ctx, testCollection, CountryTotalsQuery{Margin: 0, Metric: MetricDuration, Order: OrderDesc, TopCount: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "TN", rows[0].Pays)
	assert.Equal(t, "DE", rows[1].Pays)

	_, err = svc.CountryTotals(ctx, testCollection, CountryTotalsQuery{Margin: 2})
	assert.True(t, isBadRequest(err))
	_, err = svc.CountryTotals(ctx, testCollection, CountryTotalsQuery{Margin: 0, Metric: "calls"})
	assert.True(t, isBadRequest(err))
	_, err = svc.CountryTotals(ctx, testCollection, CountryTotalsQuery{Margin: 0, DifferenceSign: "neutral"})
	assert.True(t, isBadRequest(err))
}

func TestDurationByOperator_ReadsOperatorSynonyms(t *testing.T) {
	svc := newTestService(t,
		database.Document{database.FieldCountry: "TN", database.FieldOperator: "Orange TN", database.FieldDuration: "1,5"},
		database.Document{database.FieldCountry: "TN", database.FieldOperatorAlt: "Orange TN", database.FieldDuration: "2"},
		database.Document{database.FieldCountry: "TN", database.FieldOperator: "Ooredoo", database.FieldDuration: "4"},
		database.Document{database.FieldCountry: "FR", database.FieldOperator: "SFR", database.FieldDuration: "8"},
	)
	ctx := context.Background()

	rows, err := svc.DurationByOperator(ctx, testCollection, "TN", "")
	require.NoError(t, err)
	assert.Equal(t, []models.OperatorDuration{
		{Operateur: "Ooredoo", TotalDuration: 4},
		{Operateur: "Orange TN", TotalDuration: 3.5},
	}, rows)

	only, err := svc.DurationByOperator(ctx, testCollection, "TN", "Orange TN")
	require.NoError(t, err)
	assert.Equal(t, []models.OperatorDuration{{Operateur: "Orange TN", TotalDuration: 3.5}}, only)

	_, err = svc.DurationByOperator(ctx, testCollection, "", "")
	assert.True(t, isBadRequest(err))
}

func TestOperatorMonthly_GroupsByOperatorAndMonth(t *testing.T) {
	op := func(operator, month, duration, difference string, margin int) database.Document {
		d := doc("TN", "A", month, duration, difference, margin)
		d[database.FieldOperator] = operator
		return d
	}
	svc := newTestService(t,
		op("Orange", "202402", "1", "-1", 1),
		op("Orange", "202401", "2", "-2", 1),
		op("Orange", "202401", "3", "1", 1),
		op("Ooredoo", "202401", "5", "-5", 0),
	)
	ctx := context.Background()

	rows, err := svc.OperatorMonthly(ctx, testCollection, "TN", "", database.IntPtr(1))
	require.NoError(t, err)
	assert.Equal(t, []models.OperatorMonthly{{
		Operateur: "Orange",
		MonthlyData: []models.MonthlyPoint{
			{Mois: "202401", TotalDuration: 5, TotalDifference: -1},
			{Mois: "202402", TotalDuration: 1, TotalDifference: -1},
		},
	}}, rows)

	all, err := svc.OperatorMonthly(ctx, testCollection, "TN", "", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ooredoo", all[0].Operateur)

	series, err := svc.OperatorMonthSeries(ctx, testCollection, "TN", "Orange", nil)
	require.NoError(t, err)
	assert.Equal(t, []models.MonthDuration{{Mois: "202401", TotalDuration: 5}, {Mois: "202402", TotalDuration: 1}}, series)
}

func TestDistinctListings(t *testing.T) {
	svc := newTestService(t,
		doc("TN", "A", "202401", "1", "", 1),
		doc("FR", "B", "202401", "1", "", 0),
		doc("DE", "A", "202401", "1", "", 0),
		doc("", "", "202401", "1", "", 0),
	)
	ctx := context.Background()

	countries, err := svc.Countries(ctx, testCollection, Scope{})
	require.NoError(t, err)
	assert.Equal(t, []string{"DE", "FR", "TN"}, countries)

	byZone, err := svc.Countries(ctx, testCollection, Scope{Zone: "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"DE", "TN"}, byZone)

	byMargin, err := svc.Countries(ctx, testCollection, Scope{Margin: database.IntPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"TN"}, byMargin)

	zones, err := svc.Zones(ctx, testCollection, Scope{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, zones)

	_, err = svc.Countries(ctx, testCollection, Scope{Margin: database.IntPtr(3)})
	assert.True(t, isBadRequest(err))
}

func TestCountryOperatorsAndRecordsByMargin(t *testing.T) {
	op := func(country, operator string, margin int) database.Document {
		d := doc(country, "A", "202401", "1", "", margin)
		d[database.FieldOperator] = operator
		return d
	}
	svc := newTestService(t,
		op("TN", "Orange", 1),
		op("TN", "Ooredoo", 1),
		op("TN", "Orange", 1),
		op("FR", "SFR", 1),
		op("DE", "Telekom", 0),
	)
	ctx := context.Background()

	rows, err := svc.CountryOperators(ctx, testCollection, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.CountryOperators{
		{Pays: "FR", Operateurs: []string{"SFR"}},
		{Pays: "TN", Operateurs: []string{"Ooredoo", "Orange"}},
	}, rows)

	docs, err := svc.RecordsByMargin(ctx, testCollection, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "DE", docs[0][database.FieldCountry])
}

func TestCollectionNameIsValidated(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.DurationByZone(context.Background(), "system.users")
	assert.True(t, isBadRequest(err))
}

func TestCountryMonthSeries(t *testing.T) {
	svc := newTestService(t,
		doc("TN", "A", "202402", "2,5", "", 0),
		doc("TN", "A", "202401", "1", "", 1),
		doc("TN", "B", "202402", "0,5", "", 1),
		doc("FR", "B", "202401", "100", "", 0),
	)
	ctx := context.Background()

	rows, err := svc.CountryMonthSeries(ctx, testCollection, "TN")
	require.NoError(t, err)
	assert.Equal(t, []models.MonthDuration{
		{Mois: "202401", TotalDuration: 1},
		{Mois: "202402", TotalDuration: 3},
	}, rows)

	rows, err = svc.CountryMonthSeries(ctx, testCollection, "IT")
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.CountryMonthSeries(ctx, testCollection, "")
	assert.True(t, isBadRequest(err))
}
