package global

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malekyahyaouii/Orange/internal/common"
)

type monthRangeInput struct {
	Collection string `validate:"required,collection_name"`
	StartMonth string `validate:"required,month_code"`
	EndMonth   string `validate:"required,month_code"`
}

func TestValidateStructAcceptsValidInput(t *testing.T) {
	InitValidator()
	err := ValidateStruct(&monthRangeInput{Collection: "trafic_2024", StartMonth: "202401", EndMonth: "202412"})
	assert.NoError(t, err)
}

func TestValidateStructReportsFields(t *testing.T) {
	InitValidator()
	err := ValidateStruct(&monthRangeInput{Collection: "system.users", StartMonth: "202413", EndMonth: "2024"})
	require.Error(t, err)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, common.ErrCodeValidationInput.Code, appErr.Code.Code)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "collection_name", details["Collection"])
	assert.Equal(t, "month_code", details["StartMonth"])
	assert.Equal(t, "month_code", details["EndMonth"])
}
