package utility

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseLocaleString(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"1234,56", 1234.56, true},
		{"1234.56", 1234.56, true},
		{" 10,5 ", 10.5, true},
		{"5", 5, true},
		{",5", 0.5, true},
		{"5,", 5, true},
		{"-12,25", -12.25, true},
		{"", 0, false},
		{"   ", 0, false},
		{",", 0, false},
		{"-", 0, false},
		{"1,234,5", 0, false},
		{"12a", 0, false},
		{"N/A", 0, false},
		{"1e5", 0, false},
	}
	for _, tc := range cases {
		got := ParseLocaleString(tc.in)
		assert.Equal(t, tc.valid, got.Valid, "input %q", tc.in)
		if tc.valid {
			assert.InDelta(t, tc.want, got.Value, 1e-9, "input %q", tc.in)
		}
	}
}

func TestParseLocaleNumber_Types(t *testing.T) {
	assert.Equal(t, Number{Value: 3, Valid: true}, ParseLocaleNumber(int32(3)))
	assert.Equal(t, Number{Value: 4, Valid: true}, ParseLocaleNumber(int64(4)))
	assert.Equal(t, Number{Value: 2.5, Valid: true}, ParseLocaleNumber(2.5))
	assert.False(t, ParseLocaleNumber(nil).Valid)
	assert.False(t, ParseLocaleNumber(math.NaN()).Valid)
	assert.False(t, ParseLocaleNumber(math.Inf(1)).Valid)
	assert.False(t, ParseLocaleNumber(true).Valid)

	d, err := primitive.ParseDecimal128("7.25")
	assert.NoError(t, err)
	assert.Equal(t, Number{Value: 7.25, Valid: true}, ParseLocaleNumber(d))
}

func TestNumber_OrZero(t *testing.T) {
	assert.Equal(t, 0.0, ParseLocaleString("").OrZero())
	assert.Equal(t, 1234.56, ParseLocaleString("1234,56").OrZero())
	assert.Nil(t, Number{}.Ptr())
	assert.Equal(t, 1.5, *Number{Value: 1.5, Valid: true}.Ptr())
}

func TestParseMarginTag(t *testing.T) {
	assert.Equal(t, 1, ParseMarginTag("1"))
	assert.Equal(t, 1, ParseMarginTag(" 1 "))
	assert.Equal(t, 1, ParseMarginTag(int32(1)))
	assert.Equal(t, 1, ParseMarginTag(1.0))
	assert.Equal(t, 0, ParseMarginTag("0"))
	assert.Equal(t, 0, ParseMarginTag("abc"))
	assert.Equal(t, 0, ParseMarginTag(""))
	assert.Equal(t, 0, ParseMarginTag(nil))
	assert.Equal(t, 0, ParseMarginTag("7"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 15.5, Round2(15.5))
	assert.Equal(t, 1.24, Round2(1.235000001))
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, -2.5, Round2(-2.499999))
}
