// Package global giữ các biến dùng chung toàn process được khởi tạo một lần khi start.
package global

import (
	"github.com/go-playground/validator/v10"

	"github.com/malekyahyaouii/Orange/config"
)

// Các biến toàn cục
var Validate *validator.Validate       // Biến toàn cục lưu trữ validator
var ServerConfig *config.Configuration // Biến toàn cục lưu trữ cấu hình server
