package main

import (
	"github.com/sirupsen/logrus"

	"github.com/malekyahyaouii/Orange/internal/database"
)

// InitRegistry tạo CollectionRegistry trên backend.
// Registry được truyền vào router và từ đó vào từng service, không có biến toàn cục.
func InitRegistry(backend database.Backend) *database.CollectionRegistry {
	reg := database.NewCollectionRegistry(backend)
	logrus.Info("Initialized collection registry")
	return reg
}
