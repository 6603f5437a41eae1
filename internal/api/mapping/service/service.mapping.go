// Package mappingsvc quản lý bảng mapping quốc gia -> zone và zone -> retail price:
// liệt kê khử trùng lặp, tra cứu và gán lại hàng loạt.
package mappingsvc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/malekyahyaouii/Orange/internal/api/mapping/models"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/utility"
)

// MappingService thao tác trên các collection mapping
type MappingService struct {
	source database.CollectionSource
}

// NewMappingService tạo mới MappingService
func NewMappingService(source database.CollectionSource) (*MappingService, error) {
	if source == nil {
		return nil, fmt.Errorf("collection source is nil: %w", common.ErrRequiredField)
	}
	return &MappingService{source: source}, nil
}

// Collections liệt kê các collection trong store
func (s *MappingService) Collections(ctx context.Context) ([]string, error) {
	return s.source.Names(ctx)
}

// Zones danh sách zone phân biệt
func (s *MappingService) Zones(ctx context.Context, collection string) ([]string, error) {
	coll, err := s.source.Collection(collection)
	if err != nil {
		return nil, err
	}
	return database.DistinctStrings(ctx, coll, []string{database.FieldZone}, database.Filter{})
}

// Countries danh sách quốc gia phân biệt
func (s *MappingService) Countries(ctx context.Context, collection string) ([]string, error) {
	coll, err := s.source.Collection(collection)
	if err != nil {
		return nil, err
	}
	return database.DistinctStrings(ctx, coll, []string{database.FieldCountry}, database.Filter{})
}

// SelectedFields liệt kê bộ (quốc gia, operator, zone) đã khử trùng lặp theo MappingKey,
// giữ lần xuất hiện đầu tiên theo thứ tự _id tăng dần. zone/country rỗng là không lọc.
func (s *MappingService) SelectedFields(ctx context.Context, collection, zone, country string) ([]models.MappingEntry, error) {
	coll, err := s.source.Collection(collection)
	if err != nil {
		return nil, err
	}
	docs, err := coll.Find(ctx, database.Filter{Zone: zone, Country: country}, database.FindOptions{
		Fields: []string{database.FieldCountry, database.FieldOperator, database.FieldOperatorAlt, database.FieldZone},
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(docs))
	entries := make([]models.MappingEntry, 0)
	for _, d := range docs {
		pays := database.StringValue(d[database.FieldCountry])
		operator := database.StringValue(d[database.FieldOperator])
		if operator == "" {
			operator = database.StringValue(d[database.FieldOperatorAlt])
		}
		z := database.StringValue(d[database.FieldZone])

		key := utility.MappingKey(pays, operator, z)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, models.MappingEntry{
			ID:        database.StringValue(d[database.FieldID]),
			Pays:      pays,
			Operateur: utility.FormatOperator(operator),
			Zone:      z,
		})
	}
	return entries, nil
}

// CurrentZone trả về zone của bản ghi đầu tiên thuộc quốc gia country
func (s *MappingService) CurrentZone(ctx context.Context, collection, country string) (string, error) {
	if strings.TrimSpace(country) == "" {
		return "", common.NewBadRequest("Thiếu tham số country", nil)
	}
	coll, err := s.source.Collection(collection)
	if err != nil {
		return "", err
	}
	d, err := coll.FindOne(ctx, database.Filter{Country: country}, database.FindOptions{Fields: []string{database.FieldZone}})
	if errors.Is(err, common.ErrNotFound) {
		return "", common.NewNotFound("Không tìm thấy quốc gia trong bảng mapping",
			map[string]string{"collection": collection, "country": country})
	}
	if err != nil {
		return "", err
	}
	zone := database.StringValue(d[database.FieldZone])
	if zone == "" {
		return "", common.NewNotFound("Quốc gia chưa được gán zone", map[string]string{"collection": collection, "country": country})
	}
	return zone, nil
}

// ReassignZone gán zone mới cho mọi bản ghi thuộc quốc gia country
func (s *MappingService) ReassignZone(ctx context.Context, collection, country, newZone string) (database.UpdateResult, error) {
	newZone = strings.TrimSpace(newZone)
	if strings.TrimSpace(country) == "" || newZone == "" {
		return database.UpdateResult{}, common.NewBadRequest("Thiếu country hoặc newZone", nil)
	}
	coll, err := s.source.Collection(collection)
	if err != nil {
		return database.UpdateResult{}, err
	}
	return coll.UpdateMany(ctx, database.Filter{Country: country}, database.Document{database.FieldZone: newZone})
}

// CurrentRetailPrice trả về retail price của bản ghi đầu tiên có zone khớp
// (không phân biệt hoa thường, khớp toàn chuỗi sau khi trim)
func (s *MappingService) CurrentRetailPrice(ctx context.Context, collection, zone string) (models.ZonePrice, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return models.ZonePrice{}, common.NewBadRequest("Thiếu tham số zone", nil)
	}
	coll, err := s.source.Collection(collection)
	if err != nil {
		return models.ZonePrice{}, err
	}
	d, err := coll.FindOne(ctx, database.Filter{ZoneFold: zone}, database.FindOptions{
		Fields: []string{database.FieldZone, database.FieldRetailPrice, database.FieldRetailPriceAlt},
	})
	if errors.Is(err, common.ErrNotFound) {
		return models.ZonePrice{}, common.NewNotFound("Không tìm thấy zone trong bảng mapping",
			map[string]string{"collection": collection, "zone": zone})
	}
	if err != nil {
		return models.ZonePrice{}, err
	}

	price := utility.ParseLocaleNumber(d[database.FieldRetailPrice])
	if !price.Valid {
		price = utility.ParseLocaleNumber(d[database.FieldRetailPriceAlt])
	}
	if !price.Valid {
		return models.ZonePrice{}, common.NewNotFound("Zone chưa có retail price", map[string]string{"zone": zone})
	}
	return models.ZonePrice{Zone: database.StringValue(d[database.FieldZone]), RetailPrice: price.Value}, nil
}

// ReassignRetailPrice ghi retail price (float64) cho mọi bản ghi có Zone đúng bằng zone
func (s *MappingService) ReassignRetailPrice(ctx context.Context, collection, zone string, price float64) (database.UpdateResult, error) {
	if strings.TrimSpace(zone) == "" {
		return database.UpdateResult{}, common.NewBadRequest("Thiếu tham số zone", nil)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return database.UpdateResult{}, common.NewBadRequest("retail_price không hợp lệ", nil)
	}
	coll, err := s.source.Collection(collection)
	if err != nil {
		return database.UpdateResult{}, err
	}
	return coll.UpdateMany(ctx, database.Filter{Zone: zone}, database.Document{database.FieldRetailPrice: price})
}
