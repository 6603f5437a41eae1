package mappingsvc

import (
	"context"
	"errors"
	"io"

	trafficmodels "github.com/malekyahyaouii/Orange/internal/api/traffic/models"
	"github.com/malekyahyaouii/Orange/internal/common"
	"github.com/malekyahyaouii/Orange/internal/database"
	"github.com/malekyahyaouii/Orange/internal/metrics"
	"github.com/malekyahyaouii/Orange/internal/utility"
)

// requiredMappingHeaders các cột bắt buộc của file mapping
var requiredMappingHeaders = []string{database.FieldZone, database.FieldCountry, database.FieldOperator}

// ImportMapping kiểm tra header, chuẩn hóa và ghi các dòng của file mapping vào collection.
// Ghi một lần InsertMany, không rollback khi lỗi giữa chừng.
func (s *MappingService) ImportMapping(ctx context.Context, collection string, table *utility.CSVTable) (int, error) {
	if table == nil {
		return 0, common.NewBadRequest("File mapping không có dữ liệu", map[string]string{"collection": collection})
	}
	if missing := trafficmodels.HasHeaders(table.Headers, requiredMappingHeaders...); len(missing) > 0 {
		return 0, common.NewFormatError("File mapping thiếu cột bắt buộc: Zone, Pays, Operateur", map[string]interface{}{"missing": missing})
	}
	if len(table.Rows) == 0 {
		return 0, common.NewBadRequest("File mapping không có dòng dữ liệu", map[string]string{"collection": collection})
	}
	coll, err := s.source.Collection(collection)
	if err != nil {
		return 0, err
	}

	docs := make([]database.Document, 0, len(table.Rows))
	for _, row := range table.Rows {
		docs = append(docs, trafficmodels.NormalizeRow(row))
	}
	n, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	metrics.RecordImport("mapping", n)
	return n, nil
}

// ImportMappingFile đọc file CSV mapping với dấu phân cách delimiter rồi gọi ImportMapping
func (s *MappingService) ImportMappingFile(ctx context.Context, collection string, r io.Reader, delimiter rune) (int, error) {
	table, err := utility.ReadCSV(r, delimiter)
	if err != nil {
		if errors.Is(err, utility.ErrEmptyCSV) {
			return 0, common.NewBadRequest("File mapping rỗng", map[string]string{"collection": collection})
		}
		return 0, common.NewFormatError("File mapping không đúng định dạng", err.Error())
	}
	return s.ImportMapping(ctx, collection, table)
}
