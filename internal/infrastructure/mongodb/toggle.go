package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// toggle flips the presence of the document identified by pair. Removal is
// tried first; if nothing was removed doc is inserted. A duplicate-key error
// on insert means a concurrent request created the pair, so it is present.
// The unique index on pair makes this safe without a read-then-write.
// Two concurrent toggles on a present pair can resolve to one delete and one
// insert, leaving it present; that outcome is accepted.
func toggle(ctx context.Context, coll *mongo.Collection, pair bson.D, doc any) (present bool, err error) {
	res, err := coll.DeleteOne(ctx, pair)
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func exists(ctx context.Context, coll *mongo.Collection, filter bson.D) (bool, error) {
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
