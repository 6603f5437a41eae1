package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GO_ENV trỏ tới file không tồn tại để test chỉ đọc biến môi trường
func setTestEnv(t *testing.T) {
	t.Setenv("GO_ENV", "unit_test_no_file")
}

func TestNewConfig_MemoryDriverDefaults(t *testing.T) {
	setTestEnv(t)
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, ';', cfg.TrafficDelimiter())
	assert.Equal(t, ',', cfg.MappingDelimiter())
	assert.Equal(t, 20, cfg.DefaultTopCount)
	assert.Equal(t, "trafic", cfg.MongoDB_DBName_Data)
}

func TestNewConfig_MongoRequiresURI(t *testing.T) {
	setTestEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGODB_CONNECTION_URI", "")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_UnknownDriver(t *testing.T) {
	setTestEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_InvalidDelimiter(t *testing.T) {
	setTestEnv(t)
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CSV_DELIMITER_TRAFFIC", ";;")

	_, err := NewConfig()
	assert.Error(t, err)
}
