package global

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
)

var monthCodeRegex = regexp.MustCompile(`^\d{6}$`)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("month_code", validateMonthCode)
	_ = Validate.RegisterValidation("collection_name", validateCollectionName)
}

// validateMonthCode kiểm tra mã tháng dạng YYYYMM (tháng 01..12)
func validateMonthCode(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if !monthCodeRegex.MatchString(value) {
		return false
	}
	month, _ := strconv.Atoi(value[4:])
	return month >= 1 && month <= 12
}

// validateCollectionName kiểm tra tên collection hợp lệ cho document store
func validateCollectionName(fl validator.FieldLevel) bool {
	return database.ValidateCollectionName(fl.Field().String()) == nil
}

// ValidateStruct chạy validator trên input và trả về lỗi VAL_001 kèm danh sách field sai
func ValidateStruct(input interface{}) error {
	if Validate == nil {
		InitValidator()
	}
	err := Validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			details[fe.Field()] = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		} else {
			details[fe.Field()] = fe.Tag()
		}
	}
	return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, details)
}
