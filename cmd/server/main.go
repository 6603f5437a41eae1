package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/malekyahyaouii/Orange/config"
	"github.com/malekyahyaouii/Orange/internal/global"
	"github.com/malekyahyaouii/Orange/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc các biến môi trường LOG_*
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// resolvePath trả về đường dẫn tương đối tính từ thư mục gốc project (thư mục chứa config/env)
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// listen chạy server (HTTP hoặc HTTPS) cho đến khi app bị shutdown
func listen(app *fiber.App, cfg *config.Configuration) error {
	address := ":" + cfg.Address
	log := logger.GetAppLogger()

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)
		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			return fmt.Errorf("load TLS certificate: %w", err)
		}
		ln, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("create listener: %w", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})
		log.WithFields(map[string]interface{}{"address": address, "cert": certPath}).Info("Starting server with HTTPS/TLS")
		return app.Listener(tlsListener)
	}

	log.WithFields(map[string]interface{}{"address": address, "protocol": "HTTP"}).Info("Starting server with HTTP")
	return app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true})
}

// Hàm main
func main() {
	initLogger()
	defer logger.Close()

	InitGlobal()
	cfg := global.ServerConfig

	backend, client := initStore(cfg)
	defer closeStore(client)

	reg := InitRegistry(backend)
	InitIndexes(reg)

	log := logger.GetAppLogger()
	app, err := InitFiberApp(cfg, reg)
	if err != nil {
		log.Fatalf("Failed to initialize Fiber app: %v", err)
	}

	// Graceful shutdown khi nhận SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.WithField("signal", sig.String()).Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown error")
		}
	}()

	if err := listen(app, cfg); err != nil {
		log.WithError(err).Error("Server stopped with error")
		return
	}
	log.Info("Server stopped")
}
