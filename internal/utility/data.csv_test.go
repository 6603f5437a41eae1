package utility

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_Semicolon(t *testing.T) {
	input := "\ufeffPays;Zone;durée Minute\nFR;A;10,5\n\nTN;B;3,25;extra\nDE;A\n"
	table, err := ReadCSV(strings.NewReader(input), ';')
	require.NoError(t, err)

	assert.Equal(t, []string{"Pays", "Zone", "durée Minute"}, table.Headers)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, map[string]string{"Pays": "FR", "Zone": "A", "durée Minute": "10,5"}, table.Rows[0])
	assert.Equal(t, map[string]string{"Pays": "TN", "Zone": "B", "durée Minute": "3,25"}, table.Rows[1])
	assert.Equal(t, map[string]string{"Pays": "DE", "Zone": "A"}, table.Rows[2])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), ',')
	assert.True(t, errors.Is(err, ErrEmptyCSV))
}
