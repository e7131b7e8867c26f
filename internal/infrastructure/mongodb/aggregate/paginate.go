package aggregate

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/vibhive/pkg/pagination"
)

// Aggregator is satisfied by *mongo.Collection.
type Aggregator interface {
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
}

type facetResult[T any] struct {
	Metadata []struct {
		Total int64 `bson:"total"`
	} `bson:"metadata"`
	Docs []T `bson:"docs"`
}

// PageStage wraps the skip/limit window and total count into one $facet so
// a page costs a single round-trip. perDoc runs on the windowed documents
// only. opts must be normalized.
func PageStage(opts pagination.Options, perDoc ...Stage) Facet {
	return Facet{
		{Name: "metadata", Pipeline: New(Count("total"))},
		{Name: "docs", Pipeline: New(Skip(opts.Skip()), Limit(opts.Limit)).Then(perDoc...)},
	}
}

// Paginate runs pipeline against coll and returns the requested page. The
// pipeline's own ordering is kept; none is added here.
func Paginate[T any](ctx context.Context, coll Aggregator, pipeline Pipeline, opts pagination.Options) (*pagination.Page[T], error) {
	return PaginateWindow[T](ctx, coll, pipeline, nil, opts)
}

// PaginateWindow is Paginate with perDoc applied after the window. perDoc
// must not drop documents, or the total would disagree with the page.
func PaginateWindow[T any](ctx context.Context, coll Aggregator, base, perDoc Pipeline, opts pagination.Options) (*pagination.Page[T], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	cur, err := coll.Aggregate(ctx, base.Then(PageStage(opts, perDoc...)).BSON())
	if err != nil {
		return nil, fmt.Errorf("aggregate page: %w", err)
	}
	var out []facetResult[T]
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	var (
		total int64
		docs  []T
	)
	if len(out) > 0 {
		if len(out[0].Metadata) > 0 {
			total = out[0].Metadata[0].Total
		}
		docs = out[0].Docs
	}
	return pagination.NewPage(docs, total, opts), nil
}

// One runs pipeline and decodes the first result; found is false when the
// pipeline yields nothing.
func One[T any](ctx context.Context, coll Aggregator, pipeline Pipeline) (doc T, found bool, err error) {
	cur, err := coll.Aggregate(ctx, pipeline.Then(Limit(1)).BSON())
	if err != nil {
		return doc, false, fmt.Errorf("aggregate: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()
	if !cur.Next(ctx) {
		return doc, false, cur.Err()
	}
	if err := cur.Decode(&doc); err != nil {
		return doc, false, fmt.Errorf("decode: %w", err)
	}
	return doc, true, nil
}
