// Package database chứa lớp truy cập document store: kết nối MongoDB,
// interface Collection dùng chung cho Mongo và bộ nhớ, và registry các collection.
package database

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Tên field chuẩn trong document trafic/mapping. Giữ nguyên dấu và khoảng trắng.
const (
	FieldID             = "_id"
	FieldCountry        = "Pays"
	FieldOperator       = "Opérateur"
	FieldOperatorAlt    = "Operateur"
	FieldZone           = "Zone"
	FieldMonth          = "Mois"
	FieldMonthAlt       = "mois"
	FieldDuration       = "durée Minute"
	FieldDurationAlt    = "duréeMinute"
	FieldDifference     = "Difference"
	FieldDifferenceAlt  = "difference"
	FieldMargin         = "marge"
	FieldRetailPrice    = "retail_price"
	FieldRetailPriceAlt = "retailPrice"
)

// Document là một bản ghi thô; "_id" luôn ở dạng chuỗi hex
type Document map[string]interface{}

// Filter là điều kiện lọc logic, được dịch sang bson (Mongo) hoặc so khớp trực tiếp (bộ nhớ).
// Các trường rỗng/nil không tham gia lọc; các điều kiện được AND với nhau.
type Filter struct {
	Country   string // Pays == Country
	Operator  string // Opérateur == Operator (hoặc Operateur)
	Zone      string // Zone == Zone
	ZoneFold  string // Zone khớp không phân biệt hoa thường, toàn chuỗi
	Margin    *int   // marge == Margin
	MonthFrom string // Mois >= MonthFrom (YYYYMM)
	MonthTo   string // Mois <= MonthTo (YYYYMM)
}

// FindOptions tùy chọn khi đọc: Fields là projection (nil = tất cả field), Limit = 0 là không giới hạn.
// Kết quả luôn theo thứ tự _id tăng dần.
type FindOptions struct {
	Fields []string
	Limit  int64
}

// UpdateResult báo cáo riêng số bản ghi khớp và số bản ghi thực sự thay đổi
type UpdateResult struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

// Collection là handle tới một collection theo tên
type Collection interface {
	Name() string
	Find(ctx context.Context, filter Filter, opts FindOptions) ([]Document, error)
	// FindOne trả về common.ErrNotFound khi không có bản ghi khớp
	FindOne(ctx context.Context, filter Filter, opts FindOptions) (Document, error)
	Distinct(ctx context.Context, field string, filter Filter) ([]interface{}, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	InsertMany(ctx context.Context, docs []Document) (int, error)
	UpdateMany(ctx context.Context, filter Filter, set Document) (UpdateResult, error)
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
}

// Backend mở handle collection và liệt kê các collection đang có
type Backend interface {
	Open(name string) Collection
	ListNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Indexer được Backend nào hỗ trợ index triển khai (Mongo)
type Indexer interface {
	EnsureIndexes(ctx context.Context, name string) error
}

// IntPtr tiện ích tạo *int cho Filter.Margin
func IntPtr(v int) *int {
	return &v
}

// CollectionSource cấp handle collection theo tên; CollectionRegistry là implementation chính
type CollectionSource interface {
	Collection(name string) (Collection, error)
	Names(ctx context.Context) ([]string, error)
}

// DistinctStrings lấy giá trị phân biệt của một hoặc nhiều field đồng nghĩa (vd Opérateur/Operateur),
// bỏ giá trị rỗng, trả về danh sách đã sắp xếp
func DistinctStrings(ctx context.Context, coll Collection, fields []string, filter Filter) ([]string, error) {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, field := range fields {
		values, err := coll.Distinct(ctx, field, filter)
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			s := StringValue(v)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			result = append(result, s)
		}
	}
	sort.Strings(result)
	return result, nil
}

// StringValue chuyển giá trị đọc từ store thành chuỗi đã trim.
// Số nguyên lưu dạng float (202401.0) được in không có phần thập phân.
func StringValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
