package main

import (
	"context"
	"time"

	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/logger"
)

// InitIndexes đăng ký handle và tạo index cho mọi collection đang có trong store.
// Lỗi tạo index chỉ được log, server vẫn chạy.
func InitIndexes(reg *database.CollectionRegistry) {
	log := logger.WithModule("store")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	names, err := reg.Names(ctx)
	if err != nil {
		log.WithError(err).Warn("Không liệt kê được collection, bỏ qua tạo index")
		return
	}

	for _, name := range names {
		if _, err := reg.Collection(name); err != nil {
			log.WithError(err).WithField("collection", name).Warn("Bỏ qua collection không hợp lệ")
			continue
		}
		if err := reg.EnsureIndexes(ctx, name); err != nil {
			log.WithError(err).WithField("collection", name).Warn("Failed to ensure indexes")
			continue
		}
	}
	log.WithField("collections", len(names)).Info("Ensured indexes for existing collections")
}
