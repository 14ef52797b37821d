package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillspring/server/core"
)

func insertedID(res *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.Errorf("unexpected inserted id %v", res.InsertedID)
	}
	return id, nil
}

func updateResult(res *mongo.UpdateResult) core.UpdateResult {
	return core.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

// findAll decodes every document matching filter. It never returns a nil slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	docs := make([]T, 0)
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return doc, core.ErrNotFound
		}
		return doc, err
	}
	return doc, nil
}

// searchFilter matches documents where any of `fields` contains `term`, ignoring case.
func searchFilter(term string, fields ...string) bson.M {
	pattern := primitive.Regex{Pattern: core.SearchPattern(term), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return bson.M{"$or": or}
}

// storeError turns a lost client into a shutdown error: no later request can be served.
func storeError(err error) error {
	if err != nil && errors.Is(err, mongo.ErrClientDisconnected) {
		return core.NewShutdownError("database client disconnected: " + err.Error())
	}
	return err
}

func byID(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id}
}
