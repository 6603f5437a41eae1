// Package trafficsvc chứa Aggregation Engine cho dữ liệu trafic roaming:
// tổng hợp theo quốc gia, zone, tháng, operator và các danh sách giá trị phân biệt.
// Mọi phép tổng hợp chỉ đọc và chạy trong Go trên document đã lọc + projection.
package trafficsvc

import (
	"context"
	"fmt"

	"github.com/malekyahyaouii/Orange/internal/api/traffic/models"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
)

// DefaultTopCount số dòng mặc định khi không truyền topCount
const DefaultTopCount = 20

// TrafficService thực hiện các truy vấn tổng hợp trên collection trafic
type TrafficService struct {
	source   database.CollectionSource
	topCount int
}

// NewTrafficService tạo mới TrafficService; topCount <= 0 dùng DefaultTopCount
func NewTrafficService(source database.CollectionSource, topCount int) (*TrafficService, error) {
	if source == nil {
		return nil, fmt.Errorf("collection source is nil: %w", common.ErrRequiredField)
	}
	if topCount <= 0 {
		topCount = DefaultTopCount
	}
	return &TrafficService{source: source, topCount: topCount}, nil
}

// Scope giới hạn phạm vi cho các truy vấn danh sách phân biệt
type Scope struct {
	Zone    string
	Country string
	Margin  *int
}

func (s Scope) filter() database.Filter {
	return database.Filter{Zone: s.Zone, Country: s.Country, Margin: s.Margin}
}

// Collections liệt kê các collection trong store
func (s *TrafficService) Collections(ctx context.Context) ([]string, error) {
	return s.source.Names(ctx)
}

// Countries danh sách quốc gia phân biệt trong phạm vi scope
func (s *TrafficService) Countries(ctx context.Context, collection string, scope Scope) ([]string, error) {
	return s.distinct(ctx, collection, []string{database.FieldCountry}, scope)
}

// Zones danh sách zone phân biệt trong phạm vi scope
func (s *TrafficService) Zones(ctx context.Context, collection string, scope Scope) ([]string, error) {
	return s.distinct(ctx, collection, []string{database.FieldZone}, scope)
}

// Operators danh sách operator phân biệt (đọc cả Opérateur và Operateur)
func (s *TrafficService) Operators(ctx context.Context, collection string, scope Scope) ([]string, error) {
	return s.distinct(ctx, collection, []string{database.FieldOperator, database.FieldOperatorAlt}, scope)
}

// RecordsByMargin trả về document thô có cờ margin cho trước
func (s *TrafficService) RecordsByMargin(ctx context.Context, collection string, margin int) ([]database.Document, error) {
	if err := validateMargin(margin); err != nil {
		return nil, err
	}
	coll, err := s.source.Collection(collection)
	if err != nil {
		return nil, err
	}
	docs, err := coll.Find(ctx, database.Filter{Margin: &margin}, database.FindOptions{})
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []database.Document{}
	}
	return docs, nil
}

func (s *TrafficService) distinct(ctx context.Context, collection string, fields []string, scope Scope) ([]string, error) {
	if scope.Margin != nil {
		if err := validateMargin(*scope.Margin); err != nil {
			return nil, err
		}
	}
	coll, err := s.source.Collection(collection)
	if err != nil {
		return nil, err
	}
	return database.DistinctStrings(ctx, coll, fields, scope.filter())
}

// fetch đọc và giải mã các bản ghi khớp filter, chỉ lấy các field cần cho phép tổng hợp
func (s *TrafficService) fetch(ctx context.Context, collection string, filter database.Filter, fields ...string) ([]models.TrafficRecord, error) {
	coll, err := s.source.Collection(collection)
	if err != nil {
		return nil, err
	}
	docs, err := coll.Find(ctx, filter, database.FindOptions{Fields: fields})
	if err != nil {
		return nil, err
	}
	records := make([]models.TrafficRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, models.DecodeTrafficRecord(d))
	}
	return records, nil
}

func validateMargin(margin int) error {
	if margin != 0 && margin != 1 {
		return common.NewBadRequest("Margin phải là 0 hoặc 1", map[string]int{"margin": margin})
	}
	return nil
}

func requireValue(name, value string) error {
	if value == "" {
		return common.NewBadRequest(fmt.Sprintf("Thiếu tham số %s", name), nil)
	}
	return nil
}
