package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/malekyahyaouii/Orange/internal/common"
)

// MemoryBackend lưu document trong bộ nhớ, cùng ngữ nghĩa Filter với MongoBackend.
// Dùng cho test và chế độ STORE_DRIVER=memory.
type MemoryBackend struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

// NewMemoryBackend tạo backend bộ nhớ rỗng
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{collections: make(map[string]*memoryCollection)}
}

// Open trả về handle; mở nhiều lần cùng tên dùng chung dữ liệu
func (b *MemoryBackend) Open(name string) Collection {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.collections[name]
	if !ok {
		c = &memoryCollection{name: name}
		b.collections[name] = c
	}
	return c
}

// ListNames liệt kê các collection đã từng được ghi (giống MongoDB tạo collection khi insert)
func (b *MemoryBackend) ListNames(_ context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.collections))
	for name, c := range b.collections {
		if c.materialized() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Ping luôn thành công
func (b *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

type memoryCollection struct {
	name    string
	mu      sync.RWMutex
	docs    []Document
	created bool
}

func (c *memoryCollection) materialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.created
}

func (c *memoryCollection) Name() string {
	return c.name
}

func (c *memoryCollection) Find(ctx context.Context, filter Filter, opts FindOptions) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []Document
	for _, d := range c.docs {
		if !matches(d, filter) {
			continue
		}
		result = append(result, project(d, opts.Fields))
		if opts.Limit > 0 && int64(len(result)) >= opts.Limit {
			break
		}
	}
	return result, nil
}

func (c *memoryCollection) FindOne(ctx context.Context, filter Filter, opts FindOptions) (Document, error) {
	opts.Limit = 1
	docs, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, common.ErrNotFound
	}
	return docs[0], nil
}

func (c *memoryCollection) Distinct(ctx context.Context, field string, filter Filter) ([]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var values []interface{}
	for _, d := range c.docs {
		if !matches(d, filter) {
			continue
		}
		v, ok := d[field]
		if !ok {
			continue
		}
		key := fmt.Sprintf("%T:%v", v, v)
		if seen[key] {
			continue
		}
		seen[key] = true
		values = append(values, v)
	}
	return values, nil
}

func (c *memoryCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, d := range c.docs {
		if matches(d, filter) {
			n++
		}
	}
	return n, nil
}

func (c *memoryCollection) InsertMany(ctx context.Context, docs []Document) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range docs {
		cp := make(Document, len(d)+1)
		for k, v := range d {
			cp[k] = v
		}
		if _, ok := cp[FieldID]; !ok {
			cp[FieldID] = primitive.NewObjectID().Hex()
		}
		c.docs = append(c.docs, cp)
	}
	c.created = true
	return len(docs), nil
}

func (c *memoryCollection) UpdateMany(ctx context.Context, filter Filter, set Document) (UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return UpdateResult{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var res UpdateResult
	for _, d := range c.docs {
		if !matches(d, filter) {
			continue
		}
		res.Matched++
		changed := false
		for k, v := range set {
			if cur, ok := d[k]; !ok || !reflect.DeepEqual(cur, v) {
				d[k] = v
				changed = true
			}
		}
		if changed {
			res.Modified++
		}
	}
	return res, nil
}

func (c *memoryCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.docs[:0]
	var deleted int64
	for _, d := range c.docs {
		if matches(d, filter) {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	c.docs = kept
	return deleted, nil
}

// project trả về bản sao document chỉ gồm các field yêu cầu (luôn kèm _id)
func project(d Document, fields []string) Document {
	if len(fields) == 0 {
		cp := make(Document, len(d))
		for k, v := range d {
			cp[k] = v
		}
		return cp
	}
	cp := make(Document, len(fields)+1)
	cp[FieldID] = d[FieldID]
	for _, f := range fields {
		if v, ok := d[f]; ok {
			cp[f] = v
		}
	}
	return cp
}

// matches áp dụng Filter theo cùng ngữ nghĩa với buildMongoFilter
func matches(d Document, f Filter) bool {
	if f.Country != "" && !equalString(d[FieldCountry], f.Country) {
		return false
	}
	if f.Operator != "" && !equalString(d[FieldOperator], f.Operator) && !equalString(d[FieldOperatorAlt], f.Operator) {
		return false
	}
	if f.Zone != "" {
		if !equalString(d[FieldZone], f.Zone) {
			return false
		}
	} else if f.ZoneFold != "" {
		s, ok := d[FieldZone].(string)
		if !ok || !strings.EqualFold(s, f.ZoneFold) {
			return false
		}
	}
	if f.Margin != nil && !equalMargin(d[FieldMargin], *f.Margin) {
		return false
	}
	if (f.MonthFrom != "" || f.MonthTo != "") && !inMonthRange(d[FieldMonth], f.MonthFrom, f.MonthTo) {
		return false
	}
	return true
}

func equalString(v interface{}, want string) bool {
	s, ok := v.(string)
	return ok && s == want
}

func equalMargin(v interface{}, want int) bool {
	switch x := v.(type) {
	case int:
		return x == want
	case int32:
		return int(x) == want
	case int64:
		return x == int64(want)
	case float64:
		return x == float64(want)
	case string:
		return x == strconv.Itoa(want)
	}
	return false
}

// inMonthRange: chuỗi so sánh từ điển, số so sánh theo giá trị
func inMonthRange(v interface{}, from, to string) bool {
	switch x := v.(type) {
	case string:
		return (from == "" || x >= from) && (to == "" || x <= to)
	case int, int32, int64, float64:
		n, _ := strconv.ParseFloat(fmt.Sprint(x), 64)
		if from != "" {
			f, err := strconv.ParseFloat(from, 64)
			if err != nil || n < f {
				return false
			}
		}
		if to != "" {
			t, err := strconv.ParseFloat(to, 64)
			if err != nil || n > t {
				return false
			}
		}
		return true
	}
	return false
}
