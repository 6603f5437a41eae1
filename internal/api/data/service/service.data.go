// Package datasvc nhập file CSV trafic vào collection theo tên file,
// đọc toàn bộ collection và xóa dữ liệu theo khoảng tháng.
package datasvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	trafficmodels "github.com/malekyahyaouii/Orange/internal/api/traffic/models"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/logger"
	"github.com/malekyahyaouii/Orange/internal/metrics"
	"github.com/malekyahyaouii/Orange/internal/utility"
)

var monthCodePattern = regexp.MustCompile(`^\d{6}$`)

// ImportResult kết quả một lần import
type ImportResult struct {
	Collection string `json:"collection"`
	Inserted   int    `json:"inserted"`
}

// DataService quản lý dataset trafic
type DataService struct {
	source    database.CollectionSource
	delimiter rune
}

// NewDataService tạo mới DataService; delimiter là dấu phân cách cột của file trafic
func NewDataService(source database.CollectionSource, delimiter rune) (*DataService, error) {
	if source == nil {
		return nil, fmt.Errorf("collection source is nil: %w", common.ErrRequiredField)
	}
	if delimiter == 0 {
		delimiter = ';'
	}
	return &DataService{source: source, delimiter: delimiter}, nil
}

// CollectionNameFromFile lấy tên collection từ tên file upload: base name bỏ phần mở rộng
func CollectionNameFromFile(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ImportCSV đọc file trafic và ghi toàn bộ dòng vào collection mang tên file.
// Header được chuẩn hóa, cột marge làm sạch về 0/1 (mặc định 0 khi thiếu). Ghi một lần, không rollback.
func (s *DataService) ImportCSV(ctx context.Context, fileName string, r io.Reader) (*ImportResult, error) {
	collection := CollectionNameFromFile(fileName)
	if err := database.ValidateCollectionName(collection); err != nil {
		return nil, err
	}

	table, err := utility.ReadCSV(r, s.delimiter)
	if err != nil {
		if errors.Is(err, utility.ErrEmptyCSV) {
			return nil, common.NewBadRequest("File CSV rỗng", map[string]string{"file": fileName})
		}
		return nil, common.NewFormatError("File CSV không đúng định dạng", err.Error())
	}
	if len(table.Rows) == 0 {
		return nil, common.NewBadRequest("File CSV không có dòng dữ liệu", map[string]string{"file": fileName})
	}

	docs := make([]database.Document, 0, len(table.Rows))
	for _, row := range table.Rows {
		doc := trafficmodels.NormalizeRow(row)
		if _, ok := doc[database.FieldMargin]; !ok {
			doc[database.FieldMargin] = 0
		}
		docs = append(docs, doc)
	}

	// Chỉ đăng ký collection khi file hợp lệ
	coll, err := s.source.Collection(collection)
	if err != nil {
		return nil, err
	}
	n, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	metrics.RecordImport("traffic", n)
	logger.WithModuleAndCollection("data", collection).WithField("rows", n).Info("Imported traffic CSV")
	return &ImportResult{Collection: collection, Inserted: n}, nil
}

// All trả về mọi document của collection
func (s *DataService) All(ctx context.Context, collection string) ([]database.Document, error) {
	coll, err := s.source.Collection(collection)
	if err != nil {
		return nil, err
	}
	docs, err := coll.Find(ctx, database.Filter{}, database.FindOptions{})
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []database.Document{}
	}
	return docs, nil
}

// Collections liệt kê các collection trong store
func (s *DataService) Collections(ctx context.Context) ([]string, error) {
	return s.source.Names(ctx)
}

// DeleteByMonthRange xóa các bản ghi có Mois trong [start, end] (so sánh chuỗi YYYYMM, bao gồm hai đầu).
// Trả về not found khi không có bản ghi nào khớp.
func (s *DataService) DeleteByMonthRange(ctx context.Context, collection, start, end string) (int64, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if !monthCodePattern.MatchString(start) || !monthCodePattern.MatchString(end) {
		return 0, common.NewBadRequest("startMonth và endMonth phải có dạng YYYYMM", map[string]string{"startMonth": start, "endMonth": end})
	}
	coll, err := s.source.Collection(collection)
	if err != nil {
		return 0, err
	}

	filter := database.Filter{MonthFrom: start, MonthTo: end}
	count, err := coll.Count(ctx, filter)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, common.NewNotFound("Không có bản ghi nào trong khoảng tháng", map[string]string{"startMonth": start, "endMonth": end})
	}
	return coll.DeleteMany(ctx, filter)
}
