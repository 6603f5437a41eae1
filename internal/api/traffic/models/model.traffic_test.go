package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malekyahyaouii/Orange/internal/database"
)

func TestCanonicalHeader(t *testing.T) {
	cases := map[string]string{
		"\ufeffannee":     KeyAnnee,
		"Pays":            database.FieldCountry,
		" Operateur ":     database.FieldOperator,
		"Opérateur":       database.FieldOperator,
		"durée Minute":    database.FieldDuration,
		"duree_minute":    database.FieldDuration,
		"retailPrice":     database.FieldRetailPrice,
		"retail_price":    database.FieldRetailPrice,
		"prix_unitaireTN": KeyPrixUnitaireTN,
		"MOIS":            database.FieldMonth,
		"difference":      database.FieldDifference,
	}
	for raw, want := range cases {
		got, ok := CanonicalHeader(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	got, ok := CanonicalHeader(" Commentaire ")
	assert.False(t, ok)
	assert.Equal(t, "Commentaire", got)
}

func TestNormalizeRow(t *testing.T) {
	doc := NormalizeRow(map[string]string{
		"Pays":         " Tunisia ",
		"Operateur":    "Orange TN",
		"durée Minute": "12,5",
		"marge":        "abc",
		"_id":          "ignored",
		"Note":         "x",
	})

	assert.Equal(t, "Tunisia", doc[database.FieldCountry])
	assert.Equal(t, "Orange TN", doc[database.FieldOperator])
	assert.Equal(t, "12,5", doc[database.FieldDuration])
	assert.Equal(t, 0, doc[database.FieldMargin])
	assert.Equal(t, "x", doc["Note"])
	_, hasID := doc[database.FieldID]
	assert.False(t, hasID)

	loss := NormalizeRow(map[string]string{"marge": "1"})
	assert.Equal(t, 1, loss[database.FieldMargin])
}

func TestNormalizeRow_KeepsFirstNonEmptySynonym(t *testing.T) {
	doc := NormalizeRow(map[string]string{
		"Operateur": "",
		"Opérateur": "Ooredoo",
	})
	assert.Equal(t, "Ooredoo", doc[database.FieldOperator])
}

func TestHasHeaders(t *testing.T) {
	missing := HasHeaders([]string{"Zone", "pays", "Operateur"}, database.FieldZone, database.FieldCountry, database.FieldOperator)
	assert.Empty(t, missing)

	missing = HasHeaders([]string{"Zone"}, database.FieldZone, database.FieldCountry, database.FieldOperator)
	assert.Equal(t, []string{database.FieldCountry, database.FieldOperator}, missing)
}

func TestDecodeTrafficRecord(t *testing.T) {
	rec := DecodeTrafficRecord(database.Document{
		database.FieldID:          "65a000000000000000000001",
		database.FieldCountry:     "FR",
		database.FieldOperatorAlt: "SFR",
		database.FieldDurationAlt: "3,5",
		database.FieldMonth:       int32(202401),
		database.FieldDifference:  "-1,25",
		database.FieldMargin:      "1",
		"Commentaire":             "note",
	})

	assert.Equal(t, "65a000000000000000000001", rec.ID)
	assert.Equal(t, "FR", rec.Country)
	assert.Equal(t, "SFR", rec.Operator)
	assert.Equal(t, "202401", rec.Mois)
	require.True(t, rec.Duration.Valid)
	assert.Equal(t, 3.5, rec.Duration.Value)
	assert.Equal(t, -1.25, rec.Difference.Value)
	assert.Equal(t, 1, rec.Margin)
	assert.False(t, rec.RetailPrice.Valid)
	assert.Equal(t, map[string]interface{}{"Commentaire": "note"}, rec.Extra)
}
