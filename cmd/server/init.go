package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/malekyahyaouii/Orange/config"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/global"
)

// InitGlobal khởi tạo validator và cấu hình server
func InitGlobal() {
	initValidator() // Khởi tạo validator
	initConfig()    // Khởi tạo cấu hình server
}

// Hàm khởi tạo validator
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to initialize config: %v", err)
	}
	global.ServerConfig = cfg
	logrus.WithField("store_driver", cfg.StoreDriver).Info("Initialized server config")
}

// initStore mở backend theo STORE_DRIVER.
// Với mongo, client trả về để main đóng kết nối khi shutdown; với memory, client là nil.
func initStore(cfg *config.Configuration) (database.Backend, *mongo.Client) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logrus.Warn("STORE_DRIVER=memory: dữ liệu chỉ tồn tại trong process")
		return database.NewMemoryBackend(), nil
	}

	client, err := database.GetInstance(cfg)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")
	return database.NewMongoBackend(client.Database(cfg.MongoDB_DBName_Data)), client
}

// closeStore đóng kết nối MongoDB (nếu có)
func closeStore(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = database.CloseInstance(ctx, client)
}
