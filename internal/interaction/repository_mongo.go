package interaction

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection is the part of *mongo.Collection the repository uses.
type collection interface {
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// MongoRepository stores one document per record. Each document gets a fresh
// ObjectID and, unless the record already carries one, a server timestamp.
type MongoRepository struct {
	coll     collection
	client   *mongo.Client
	pageSize int64
}

func NewMongoRepository(coll *mongo.Collection, pageSize int) *MongoRepository {
	return &MongoRepository{
		coll:     coll,
		client:   coll.Database().Client(),
		pageSize: int64(pageSize),
	}
}

func (r *MongoRepository) Backend() string { return BackendMongo }

func (r *MongoRepository) Append(ctx context.Context, rec Record) (Record, error) {
	const op = "MongoRepository.Append"

	fields := bson.M{
		"brand":        rec.Brand,
		"product_name": rec.ProductName,
		"skin_type":    rec.SkinType,
		"price_range":  string(rec.PriceRange),
		"price_value":  rec.PriceValue,
	}
	update := bson.M{"$set": fields}
	if rec.Timestamp.Valid {
		fields["timestamp"] = rec.Timestamp.Time
	} else {
		update["$currentDate"] = bson.M{"timestamp": true}
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bson.M
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": primitive.NewObjectID()}, update, opts).Decode(&doc)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	return decodeDocument(doc), nil
}

// ReadAll returns the newest documents first, capped at the page size.
func (r *MongoRepository) ReadAll(ctx context.Context) ([]Record, error) {
	const op = "MongoRepository.ReadAll"

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if r.pageSize > 0 {
		opts.SetLimit(r.pageSize)
	}

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	defer cur.Close(ctx)

	out := make([]Record, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			out = append(out, Record{})
			continue
		}
		out = append(out, decodeDocument(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	return out, nil
}

func (r *MongoRepository) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}

func decodeDocument(doc bson.M) Record {
	m := make(map[string]any, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case primitive.DateTime:
			m[k] = t.Time()
		case int32, int64, float64, string, time.Time:
			m[k] = t
		}
	}
	return decodeLoose(m)
}
