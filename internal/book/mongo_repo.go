package book

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores book records in a single MongoDB collection.
type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// EnsureIndexes declares the indexes backing the bestseller sort, the
// author/stock sort, and price-range filtering. They are performance
// hints only; no operation depends on them for correctness.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.coll.Indexes().CreateMany(timeoutCtx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sales", Value: -1}, {Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "stock", Value: -1}, {Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	})
	return err
}

func (r *MongoRepo) objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed hex string cannot name any record.
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func (r *MongoRepo) FindAll(ctx context.Context) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cursor, err := r.coll.Find(timeoutCtx, bson.D{})
	if err != nil {
		return nil, err
	}
	var out []Book
	if err := cursor.All(timeoutCtx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (Book, error) {
	oid, err := r.objectID(id)
	if err != nil {
		return Book{}, err
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err = r.coll.FindOne(timeoutCtx, bson.M{"_id": oid}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// FindByTitle does an exact match on the normalized title, used by the
// duplicate-title pre-check.
func (r *MongoRepo) FindByTitle(ctx context.Context, title string) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.coll.FindOne(timeoutCtx, bson.M{"title": title}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *MongoRepo) Insert(ctx context.Context, b Book) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.InsertOne(timeoutCtx, b)
	if err != nil {
		return Book{}, err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return b, nil
}

func (r *MongoRepo) ReplaceByID(ctx context.Context, id string, b Book) (Book, error) {
	oid, err := r.objectID(id)
	if err != nil {
		return Book{}, err
	}
	update := bson.M{"$set": bson.M{
		"title":       b.Title,
		"author":      b.Author,
		"description": b.Description,
		"price":       b.Price,
		"stock":       b.Stock,
		"sales":       b.Sales,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var updated Book
	err = r.coll.FindOneAndUpdate(timeoutCtx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return updated, nil
}

func (r *MongoRepo) DeleteByID(ctx context.Context, id string) (Book, error) {
	oid, err := r.objectID(id)
	if err != nil {
		return Book{}, err
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var deleted Book
	err = r.coll.FindOneAndDelete(timeoutCtx, bson.M{"_id": oid}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return deleted, nil
}

func (r *MongoRepo) Search(ctx context.Context, q SearchQuery) ([]Book, error) {
	filter := bson.M{
		"title":  primitive.Regex{Pattern: regexp.QuoteMeta(q.Title), Options: "i"},
		"author": primitive.Regex{Pattern: regexp.QuoteMeta(q.Author), Options: "i"},
		"price":  bson.M{"$gte": q.MinPrice, "$lte": q.MaxPrice},
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cursor, err := r.coll.Find(timeoutCtx, filter)
	if err != nil {
		return nil, err
	}
	var out []Book
	if err := cursor.All(timeoutCtx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalStock sums stock across all records. The group stage yields no
// rows at all over an empty collection, so that case is mapped to 0
// here instead of indexing into an empty result.
func (r *MongoRepo) TotalStock(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$stock"}}},
		}}},
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cursor, err := r.coll.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(timeoutCtx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoRepo) TopBestsellers(ctx context.Context) ([]TitleSales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$title"},
			{Key: "sales", Value: bson.D{{Key: "$sum", Value: "$sales"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "sales", Value: -1}}}},
		{{Key: "$limit", Value: 5}},
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cursor, err := r.coll.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return nil, err
	}
	var out []TitleSales
	if err := cursor.All(timeoutCtx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) TopStockedAuthors(ctx context.Context) ([]AuthorStock, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "stock", Value: bson.D{{Key: "$sum", Value: "$stock"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "stock", Value: -1}}}},
		{{Key: "$limit", Value: 5}},
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cursor, err := r.coll.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return nil, err
	}
	var out []AuthorStock
	if err := cursor.All(timeoutCtx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
