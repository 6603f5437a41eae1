package database

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malekyahyaouii/Orange/internal/common"
)

// MongoBackend mở các collection trong một database MongoDB
type MongoBackend struct {
	db *mongo.Database
}

// NewMongoBackend tạo backend trên database db
func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{db: db}
}

// Open trả về handle tới collection (MongoDB tự tạo collection ở lần ghi đầu tiên)
func (b *MongoBackend) Open(name string) Collection {
	return &mongoCollection{coll: b.db.Collection(name)}
}

// ListNames liệt kê các collection, bỏ qua collection hệ thống
func (b *MongoBackend) ListNames(ctx context.Context) ([]string, error) {
	names, err := b.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	result := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasPrefix(n, "system.") {
			continue
		}
		result = append(result, n)
	}
	sort.Strings(result)
	return result, nil
}

// Ping kiểm tra kết nối tới MongoDB
func (b *MongoBackend) Ping(ctx context.Context) error {
	return b.db.Client().Ping(ctx, nil)
}

// EnsureIndexes tạo các index phục vụ lọc theo quốc gia, zone, tháng và margin
func (b *MongoBackend) EnsureIndexes(ctx context.Context, name string) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: FieldCountry, Value: 1}}, Options: options.Index().SetName("idx_pays")},
		{Keys: bson.D{{Key: FieldZone, Value: 1}}, Options: options.Index().SetName("idx_zone")},
		{Keys: bson.D{{Key: FieldMonth, Value: 1}}, Options: options.Index().SetName("idx_mois")},
		{Keys: bson.D{{Key: FieldMargin, Value: 1}, {Key: FieldCountry, Value: 1}}, Options: options.Index().SetName("idx_marge_pays")},
	}
	if _, err := b.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// mongoCollection triển khai Collection trên *mongo.Collection
type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) Name() string {
	return c.coll.Name()
}

func (c *mongoCollection) Find(ctx context.Context, filter Filter, opts FindOptions) ([]Document, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: FieldID, Value: 1}})
	if len(opts.Fields) > 0 {
		findOpts.SetProjection(projection(opts.Fields))
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := c.coll.Find(ctx, buildMongoFilter(filter), findOpts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromBSON(m))
	}
	return docs, nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter, opts FindOptions) (Document, error) {
	findOpts := options.FindOne().SetSort(bson.D{{Key: FieldID, Value: 1}})
	if len(opts.Fields) > 0 {
		findOpts.SetProjection(projection(opts.Fields))
	}
	var m bson.M
	if err := c.coll.FindOne(ctx, buildMongoFilter(filter), findOpts).Decode(&m); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return fromBSON(m), nil
}

func (c *mongoCollection) Distinct(ctx context.Context, field string, filter Filter) ([]interface{}, error) {
	values, err := c.coll.Distinct(ctx, field, buildMongoFilter(filter))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

func (c *mongoCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, buildMongoFilter(filter))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return n, nil
}

func (c *mongoCollection) InsertMany(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	items := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		items = append(items, toBSON(d))
	}
	res, err := c.coll.InsertMany(ctx, items)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return len(res.InsertedIDs), nil
}

func (c *mongoCollection) UpdateMany(ctx context.Context, filter Filter, set Document) (UpdateResult, error) {
	res, err := c.coll.UpdateMany(ctx, buildMongoFilter(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		return UpdateResult{}, common.ConvertMongoError(err)
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (c *mongoCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, buildMongoFilter(filter))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return res.DeletedCount, nil
}

// buildMongoFilter dịch Filter sang bson.M
func buildMongoFilter(f Filter) bson.M {
	m := bson.M{}
	var and []bson.M

	if f.Country != "" {
		m[FieldCountry] = f.Country
	}
	if f.Operator != "" {
		and = append(and, bson.M{"$or": []bson.M{
			{FieldOperator: f.Operator},
			{FieldOperatorAlt: f.Operator},
		}})
	}
	if f.Zone != "" {
		m[FieldZone] = f.Zone
	} else if f.ZoneFold != "" {
		m[FieldZone] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.ZoneFold) + "$", Options: "i"}
	}
	if f.Margin != nil {
		m[FieldMargin] = bson.M{"$in": bson.A{*f.Margin, strconv.Itoa(*f.Margin)}}
	}
	if f.MonthFrom != "" || f.MonthTo != "" {
		and = append(and, monthRangeFilter(f.MonthFrom, f.MonthTo))
	}

	if len(and) > 0 {
		m["$and"] = and
	}
	return m
}

// monthRangeFilter khớp Mois lưu dạng chuỗi (so sánh từ điển) hoặc dạng số
func monthRangeFilter(from, to string) bson.M {
	strRange := bson.M{}
	numRange := bson.M{}
	if from != "" {
		strRange["$gte"] = from
		if n, err := strconv.Atoi(from); err == nil {
			numRange["$gte"] = n
		}
	}
	if to != "" {
		strRange["$lte"] = to
		if n, err := strconv.Atoi(to); err == nil {
			numRange["$lte"] = n
		}
	}
	clauses := []bson.M{{FieldMonth: strRange}}
	if len(numRange) == len(strRange) {
		clauses = append(clauses, bson.M{FieldMonth: numRange})
	}
	return bson.M{"$or": clauses}
}

func projection(fields []string) bson.D {
	p := make(bson.D, 0, len(fields))
	for _, f := range fields {
		p = append(p, bson.E{Key: f, Value: 1})
	}
	return p
}

// fromBSON chuyển bson.M thành Document, _id ObjectID thành chuỗi hex
func fromBSON(m bson.M) Document {
	doc := Document(m)
	if oid, ok := m[FieldID].(primitive.ObjectID); ok {
		doc[FieldID] = oid.Hex()
	}
	return doc
}

// toBSON chuyển Document thành bson.M, _id dạng hex được chuyển lại thành ObjectID
func toBSON(d Document) bson.M {
	m := bson.M{}
	for k, v := range d {
		m[k] = v
	}
	if s, ok := m[FieldID].(string); ok {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			m[FieldID] = oid
		}
	}
	return m
}
