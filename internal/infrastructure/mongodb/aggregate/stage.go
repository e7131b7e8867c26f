// Package aggregate builds MongoDB aggregation pipelines from typed stage
// descriptors and paginates over them.
package aggregate

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stage is one typed pipeline stage.
type Stage interface {
	Document() bson.D
}

// Field is a named expression, rendered in declaration order.
type Field struct {
	Name string
	Expr any
}

// Match filters documents.
type Match struct {
	Filter bson.D
}

func (m Match) Document() bson.D {
	filter := m.Filter
	if filter == nil {
		filter = bson.D{}
	}
	return bson.D{{Key: "$match", Value: filter}}
}

// Lookup joins another collection on LocalField == ForeignField, optionally
// narrowing the joined documents with a sub-pipeline.
type Lookup struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
	Pipeline     Pipeline
}

func (l Lookup) Document() bson.D {
	body := bson.D{
		{Key: "from", Value: l.From},
		{Key: "localField", Value: l.LocalField},
		{Key: "foreignField", Value: l.ForeignField},
		{Key: "as", Value: l.As},
	}
	if len(l.Pipeline) > 0 {
		body = append(body, bson.E{Key: "pipeline", Value: l.Pipeline.BSON()})
	}
	return bson.D{{Key: "$lookup", Value: body}}
}

// AddFields sets computed fields, overwriting existing ones of the same name.
type AddFields []Field

func (a AddFields) Document() bson.D {
	body := make(bson.D, 0, len(a))
	for _, f := range a {
		body = append(body, bson.E{Key: f.Name, Value: f.Expr})
	}
	return bson.D{{Key: "$addFields", Value: body}}
}

// Project either includes (Include + Computed) or excludes fields. Mongo does
// not allow mixing the two except for _id, so Exclude wins when set.
type Project struct {
	Include  []string
	Exclude  []string
	Computed []Field
}

func (p Project) Document() bson.D {
	body := bson.D{}
	if len(p.Exclude) > 0 {
		for _, name := range p.Exclude {
			body = append(body, bson.E{Key: name, Value: 0})
		}
		return bson.D{{Key: "$project", Value: body}}
	}
	for _, name := range p.Include {
		body = append(body, bson.E{Key: name, Value: 1})
	}
	for _, f := range p.Computed {
		body = append(body, bson.E{Key: f.Name, Value: f.Expr})
	}
	return bson.D{{Key: "$project", Value: body}}
}

// SortKey orders by Field; Desc flips the direction.
type SortKey struct {
	Field string
	Desc  bool
}

type Sort []SortKey

func (s Sort) Document() bson.D {
	body := make(bson.D, 0, len(s))
	for _, k := range s {
		dir := 1
		if k.Desc {
			dir = -1
		}
		body = append(body, bson.E{Key: k.Field, Value: dir})
	}
	return bson.D{{Key: "$sort", Value: body}}
}

type Skip int64

func (s Skip) Document() bson.D { return bson.D{{Key: "$skip", Value: int64(s)}} }

type Limit int64

func (l Limit) Document() bson.D { return bson.D{{Key: "$limit", Value: int64(l)}} }

// ReplaceRoot promotes the embedded document at path NewRoot ("$field").
type ReplaceRoot struct {
	NewRoot string
}

func (r ReplaceRoot) Document() bson.D {
	return bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: r.NewRoot}}}}
}

// Count emits a single document {Field: n}.
type Count string

func (c Count) Document() bson.D { return bson.D{{Key: "$count", Value: string(c)}} }

// Facet runs several sub-pipelines over the same input.
type Facet []FacetBranch

type FacetBranch struct {
	Name     string
	Pipeline Pipeline
}

func (f Facet) Document() bson.D {
	body := make(bson.D, 0, len(f))
	for _, b := range f {
		body = append(body, bson.E{Key: b.Name, Value: b.Pipeline.BSON()})
	}
	return bson.D{{Key: "$facet", Value: body}}
}

// Pipeline is an ordered list of stages. Values are treated as immutable:
// Then always returns a fresh slice.
type Pipeline []Stage

// New starts a pipeline.
func New(stages ...Stage) Pipeline {
	return Pipeline(nil).Then(stages...)
}

// Then returns a new pipeline with stages appended; p is left untouched.
func (p Pipeline) Then(stages ...Stage) Pipeline {
	out := make(Pipeline, 0, len(p)+len(stages))
	out = append(out, p...)
	return append(out, stages...)
}

// Concat appends whole pipelines.
func (p Pipeline) Concat(others ...Pipeline) Pipeline {
	out := p.Then()
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// BSON renders the pipeline for the driver.
func (p Pipeline) BSON() mongo.Pipeline {
	out := make(mongo.Pipeline, 0, len(p))
	for _, s := range p {
		out = append(out, s.Document())
	}
	return out
}

// Expression helpers.

func Size(path string) bson.D { return bson.D{{Key: "$size", Value: path}} }

func First(path string) bson.D { return bson.D{{Key: "$first", Value: path}} }

// FirstOrNull yields the first array element or null for an empty array.
func FirstOrNull(path string) bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{First(path), nil}}}
}

// NonEmpty is true when the array at path holds at least one element.
func NonEmpty(path string) bson.D {
	return bson.D{{Key: "$gte", Value: bson.A{Size(path), 1}}}
}

// Eq builds a single-field equality filter.
func Eq(field string, value any) bson.D {
	return bson.D{{Key: field, Value: value}}
}
