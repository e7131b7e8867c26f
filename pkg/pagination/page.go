// Package pagination holds the page request and the page envelope shared by
// every paginated list.
package pagination

import (
	"encoding/json"
	"math"

	"github.com/oksasatya/vibhive/pkg/apperror"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
)

// Labels rename the total-count and result-list keys of a page.
type Labels struct {
	TotalDocs string
	Docs      string
}

var DefaultLabels = Labels{TotalDocs: "totalDocs", Docs: "docs"}

var (
	PostLabels      = Labels{TotalDocs: "totalPosts", Docs: "posts"}
	FollowerLabels  = Labels{TotalDocs: "totalFollowers", Docs: "followers"}
	FollowingLabels = Labels{TotalDocs: "totalFollowing", Docs: "following"}
)

type Options struct {
	Page   int64
	Limit  int64
	Labels Labels
}

// Normalize clamps page to >= 1 and limit to MaxLimit. A non-positive limit
// is a caller error, not a request for "everything". So is a page whose
// offset does not fit in int64.
func (o Options) Normalize() (Options, error) {
	if o.Limit <= 0 {
		return o, apperror.ValidationFailed("limit", "limit must be a positive integer")
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Page > math.MaxInt64/o.Limit {
		return o, apperror.ValidationFailed("page", "page is out of range")
	}
	if o.Labels.TotalDocs == "" {
		o.Labels.TotalDocs = DefaultLabels.TotalDocs
	}
	if o.Labels.Docs == "" {
		o.Labels.Docs = DefaultLabels.Docs
	}
	return o, nil
}

// Skip is the number of documents before this page. o must be normalized.
func (o Options) Skip() int64 { return (o.Page - 1) * o.Limit }

// Page is one page of T. It marshals with the configured labels.
type Page[T any] struct {
	Docs          []T
	TotalDocs     int64
	Limit         int64
	Page          int64
	TotalPages    int64
	PagingCounter int64
	HasPrevPage   bool
	HasNextPage   bool
	PrevPage      *int64
	NextPage      *int64
	Labels        Labels
}

// NewPage computes the envelope for docs out of total matches. opts must be
// normalized.
func NewPage[T any](docs []T, total int64, opts Options) *Page[T] {
	if docs == nil {
		docs = []T{}
	}
	p := &Page[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         opts.Limit,
		Page:          opts.Page,
		TotalPages:    (total + opts.Limit - 1) / opts.Limit,
		PagingCounter: opts.Skip() + 1,
		HasPrevPage:   opts.Page > 1,
		HasNextPage:   opts.Page*opts.Limit < total,
		Labels:        opts.Labels,
	}
	if p.HasPrevPage {
		prev := opts.Page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := opts.Page + 1
		p.NextPage = &next
	}
	return p
}

// Fields returns the envelope as a map keyed by the page labels. Handlers use
// it to merge extra keys into the response.
func (p Page[T]) Fields() map[string]any {
	labels := p.Labels
	if labels.Docs == "" || labels.TotalDocs == "" {
		labels = DefaultLabels
	}
	return map[string]any{
		labels.Docs:      p.Docs,
		labels.TotalDocs: p.TotalDocs,
		"limit":          p.Limit,
		"page":           p.Page,
		"totalPages":     p.TotalPages,
		"pagingCounter":  p.PagingCounter,
		"hasPrevPage":    p.HasPrevPage,
		"hasNextPage":    p.HasNextPage,
		"prevPage":       p.PrevPage,
		"nextPage":       p.NextPage,
	}
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields())
}
