package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Các driver lưu trữ được hỗ trợ
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                      // Cổng server
	StoreDriver           string `env:"STORE_DRIVER" envDefault:"mongo"`                // mongo | memory
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI"`                         // URL kết nối cơ sở dữ liệu
	MongoDB_DBName_Data   string `env:"MONGODB_DBNAME_DATA" envDefault:"trafic"`        // Tên cơ sở dữ liệu chứa các collection trafic
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`                    // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`      // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"300"`                // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`              // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`           // Bật/tắt rate limiting
	BodyLimitMB           int    `env:"BODY_LIMIT_MB" envDefault:"32"`                  // Kích thước tối đa file CSV upload (MB)
	CSVDelimiterTraffic   string `env:"CSV_DELIMITER_TRAFFIC" envDefault:";"`           // Ký tự phân cách file trafic
	CSVDelimiterMapping   string `env:"CSV_DELIMITER_MAPPING" envDefault:","`           // Ký tự phân cách file mapping
	DefaultTopCount       int    `env:"DEFAULT_TOP_COUNT" envDefault:"20"`              // N mặc định cho top/lowest
	MetricsEnabled        bool   `env:"METRICS_ENABLED" envDefault:"true"`              // Bật endpoint /metrics
	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên các thư mục cha
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi parse biến môi trường.
// Các file truyền vào được load trước file theo GO_ENV; biến đã có trong
// môi trường process không bị ghi đè (chạy trong container không cần file env).
func NewConfig(files ...string) (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			files = append(files, envPath)
		}
	}

	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("không thể load file env %v: %w", files, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi khi parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate kiểm tra các ràng buộc giữa các trường cấu hình
func (c *Configuration) validate() error {
	switch c.StoreDriver {
	case StoreDriverMongo:
		if c.MongoDB_ConnectionURI == "" {
			return fmt.Errorf("MONGODB_CONNECTION_URI là bắt buộc khi STORE_DRIVER=%s", StoreDriverMongo)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER không hợp lệ: %q (mongo | memory)", c.StoreDriver)
	}
	if len([]rune(c.CSVDelimiterTraffic)) != 1 || len([]rune(c.CSVDelimiterMapping)) != 1 {
		return fmt.Errorf("CSV delimiter phải là đúng một ký tự")
	}
	if c.DefaultTopCount <= 0 {
		c.DefaultTopCount = 20
	}
	if c.BodyLimitMB <= 0 {
		c.BodyLimitMB = 32
	}
	return nil
}

// TrafficDelimiter trả về ký tự phân cách file trafic dưới dạng rune
func (c *Configuration) TrafficDelimiter() rune {
	return []rune(c.CSVDelimiterTraffic)[0]
}

// MappingDelimiter trả về ký tự phân cách file mapping dưới dạng rune
func (c *Configuration) MappingDelimiter() rune {
	return []rune(c.CSVDelimiterMapping)[0]
}
