package database

import (
	"context"
	"strings"

	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/logger"
	"github.com/malekyahyaouii/Orange/internal/metrics"
	"github.com/malekyahyaouii/Orange/internal/registry"
)

// maxCollectionNameLen giới hạn độ dài tên collection (namespace MongoDB tối đa 255 byte gồm cả tên db)
const maxCollectionNameLen = 200

// CollectionRegistry cấp handle collection theo tên với ngữ nghĩa get-or-create.
// Được inject vào các service; handle đã tạo tồn tại đến hết vòng đời process.
type CollectionRegistry struct {
	backend Backend
	handles *registry.Registry[Collection]
}

// NewCollectionRegistry tạo registry trên backend cho trước
func NewCollectionRegistry(backend Backend) *CollectionRegistry {
	return &CollectionRegistry{
		backend: backend,
		handles: registry.NewRegistry[Collection](),
	}
}

// ValidateCollectionName kiểm tra tên collection do client gửi lên
func ValidateCollectionName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return common.NewBadRequest("Thiếu tên collection", nil)
	case len(name) > maxCollectionNameLen:
		return common.NewBadRequest("Tên collection quá dài", shortName(name))
	case strings.ContainsAny(name, "$\x00"):
		return common.NewBadRequest("Tên collection chứa ký tự không hợp lệ", map[string]string{"collection": name})
	case strings.HasPrefix(name, "system."):
		return common.NewBadRequest("Không được truy cập collection hệ thống", map[string]string{"collection": name})
	}
	return nil
}

// shortName cắt ngắn tên dài khi đưa vào details
func shortName(name string) map[string]string {
	if len(name) > 40 {
		name = name[:40] + "..."
	}
	return map[string]string{"collection": name}
}

// Collection trả về handle của collection name, tạo mới nếu chưa có.
// Nhiều goroutine gọi đồng thời lần đầu luôn nhận cùng một handle.
func (r *CollectionRegistry) Collection(name string) (Collection, error) {
	if err := ValidateCollectionName(name); err != nil {
		return nil, err
	}
	// name có thể trỏ vào buffer request của fasthttp, phải copy trước khi giữ lâu dài
	name = strings.Clone(name)
	coll, err := r.handles.GetOrCreate(name, func() (Collection, error) {
		logger.WithCollection(name).Debug("Register collection handle")
		return r.backend.Open(name), nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RegistryCollections.Set(float64(r.handles.Len()))
	return coll, nil
}

// Names liệt kê các collection hiện có trong store
func (r *CollectionRegistry) Names(ctx context.Context) ([]string, error) {
	return r.backend.ListNames(ctx)
}

// Known trả về tên các handle đã được tạo trong process
func (r *CollectionRegistry) Known() []string {
	return r.handles.Names()
}

// Ping kiểm tra kết nối store
func (r *CollectionRegistry) Ping(ctx context.Context) error {
	return r.backend.Ping(ctx)
}

// EnsureIndexes tạo index cho collection nếu backend hỗ trợ
func (r *CollectionRegistry) EnsureIndexes(ctx context.Context, name string) error {
	idx, ok := r.backend.(Indexer)
	if !ok {
		return nil
	}
	return idx.EnsureIndexes(ctx, name)
}
