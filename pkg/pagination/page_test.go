package pagination

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/vibhive/pkg/apperror"
)

func TestNewPage_Invariants(t *testing.T) {
	tests := []struct {
		name               string
		total, page, limit int64
		wantPages          int64
		wantNext, wantPrev bool
	}{
		{"empty", 0, 1, 10, 0, false, false},
		{"exact single page", 10, 1, 10, 1, false, false},
		{"partial last page", 11, 1, 10, 2, true, false},
		{"second of two", 11, 2, 10, 2, false, true},
		{"middle page", 45, 3, 10, 5, true, true},
		{"beyond last page", 5, 4, 2, 3, false, true},
		{"limit one", 3, 2, 1, 3, true, true},
		{"largest page for limit", 5, math.MaxInt64 / 10, 10, 1, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Options{Page: tt.page, Limit: tt.limit}.Normalize()
			require.NoError(t, err)
			p := NewPage[int](nil, tt.total, opts)

			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.page*tt.limit < tt.total, p.HasNextPage)
			assert.Equal(t, tt.wantNext, p.HasNextPage)
			assert.Equal(t, tt.wantPrev, p.HasPrevPage)
			assert.Equal(t, (tt.page-1)*tt.limit+1, p.PagingCounter)
			assert.NotNil(t, p.Docs)
			if tt.wantNext {
				require.NotNil(t, p.NextPage)
				assert.Equal(t, tt.page+1, *p.NextPage)
			} else {
				assert.Nil(t, p.NextPage)
			}
			if tt.wantPrev {
				require.NotNil(t, p.PrevPage)
				assert.Equal(t, tt.page-1, *p.PrevPage)
			} else {
				assert.Nil(t, p.PrevPage)
			}
		})
	}
}

func TestOptionsNormalize(t *testing.T) {
	t.Run("non-positive limit is rejected", func(t *testing.T) {
		for _, limit := range []int64{0, -1} {
			_, err := Options{Page: 1, Limit: limit}.Normalize()
			assert.ErrorIs(t, err, apperror.ErrValidation)
		}
	})
	t.Run("page below one is clamped", func(t *testing.T) {
		o, err := Options{Page: -3, Limit: 5}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, int64(1), o.Page)
	})
	t.Run("page whose offset overflows is rejected", func(t *testing.T) {
		for _, o := range []Options{
			{Page: 1 << 62, Limit: 10},
			{Page: math.MaxInt64, Limit: 1000},
			{Page: math.MaxInt64/10 + 1, Limit: 10},
		} {
			_, err := o.Normalize()
			assert.ErrorIs(t, err, apperror.ErrValidation)
		}
	})
	t.Run("limit is capped", func(t *testing.T) {
		o, err := Options{Page: 1, Limit: 1000}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, MaxLimit, o.Limit)
	})
	t.Run("labels default", func(t *testing.T) {
		o, err := Options{Page: 1, Limit: 1}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, DefaultLabels, o.Labels)
	})
}

func TestPage_MarshalUsesLabels(t *testing.T) {
	opts, _ := Options{Page: 1, Limit: 2, Labels: Labels{TotalDocs: "totalPosts", Docs: "posts"}}.Normalize()
	p := NewPage([]string{"a", "b"}, 3, opts)

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, []any{"a", "b"}, got["posts"])
	assert.EqualValues(t, 3, got["totalPosts"])
	assert.EqualValues(t, 2, got["totalPages"])
	assert.Equal(t, true, got["hasNextPage"])
	assert.Nil(t, got["prevPage"])
	assert.NotContains(t, got, "docs")
}

func TestPage_FieldsDefaultLabels(t *testing.T) {
	p := Page[int]{Docs: []int{1}, TotalDocs: 1}
	f := p.Fields()
	assert.Contains(t, f, "docs")
	assert.Contains(t, f, "totalDocs")
}
