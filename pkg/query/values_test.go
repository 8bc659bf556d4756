package query_test

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviedb/errs"
	"moviedb/pkg/query"
)

func TestValues_Page(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    query.Page
		wantErr string
	}{
		{name: "defaults when absent", raw: "", want: query.Page{Page: 1, Limit: 10}},
		{name: "explicit values", raw: "page=3&limit=25", want: query.Page{Page: 3, Limit: 25}},
		{name: "non numeric page", raw: "page=abc", wantErr: "page: must be a valid integer\n"},
		{name: "empty limit is not defaulted", raw: "limit=", wantErr: "limit: must be a valid integer\n"},
		{name: "zero page", raw: "page=0", wantErr: "page: must be at least 1\n"},
		{name: "limit too large", raw: "limit=101", wantErr: "limit: must be at most 100\n"},
		{
			name:    "collects every violation",
			raw:     "page=x&limit=y",
			wantErr: "page: must be a valid integer\nlimit: must be a valid integer\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)
			v := query.NewValues(q)

			p := v.Page()

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, v.Errors().Error())
				return
			}
			assert.Empty(t, v.Errors())
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestValues_Normalization(t *testing.T) {
	q, err := url.ParseQuery("genre=action&genre=drama&titleType=movie&isAdult=false&since=1990&q=")
	require.NoError(t, err)
	v := query.NewValues(q)

	assert.Equal(t, []string{"action", "drama"}, v.Strings("genre"))
	assert.Equal(t, []string{"movie"}, v.Strings("titleType"))
	assert.Nil(t, v.Strings("missing"))
	require.NotNil(t, v.Bool("isAdult"))
	assert.False(t, *v.Bool("isAdult"))
	require.NotNil(t, v.Int("since"))
	assert.Equal(t, 1990, *v.Int("since"))
	assert.Nil(t, v.Int("until"))
	require.NotNil(t, v.String("q"))
	assert.Equal(t, "", *v.String("q"))
	assert.Empty(t, v.Errors())

	v.Required("tconst")
	assert.Equal(t, "tconst: must be provided\n", v.Errors().Error())
}

func TestValues_Sort(t *testing.T) {
	q := url.Values{"sort": {"-primaryName"}}
	v := query.NewValues(q)

	assert.Equal(t, []query.SortField{{Field: "primaryName", Desc: true}}, v.Sort("primaryName", "birthYear"))
	assert.Empty(t, v.Errors())

	v = query.NewValues(url.Values{"sort": {"height"}})
	assert.Nil(t, v.Sort("primaryName"))
	assert.True(t, v.Errors().Has("sort"))
}

func TestNewPaged(t *testing.T) {
	t.Run("computes total pages", func(t *testing.T) {
		p, err := query.NewPaged([]int{1, 2}, 5, query.Page{Page: 1, Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 1, p.CurrentPage)
		assert.Equal(t, int64(5), p.TotalCount)
		assert.Equal(t, []int{1, 2}, p.Results)
	})

	t.Run("page beyond last page is invalid", func(t *testing.T) {
		_, err := query.NewPaged([]int{}, 5, query.Page{Page: 4, Limit: 2})

		require.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Equal(t, "page: page 4 exceeds total pages 3\n", errs.ErrorMessage(err))
	})

	t.Run("first page of empty result is valid", func(t *testing.T) {
		p, err := query.NewPaged[int](nil, 0, query.Page{Page: 1, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 0, p.TotalPages)
		assert.NotNil(t, p.Results)
	})

	t.Run("huge page saturates skip and stays invalid", func(t *testing.T) {
		p := query.Page{Page: math.MaxInt64, Limit: 100}
		assert.Equal(t, int64(math.MaxInt64), p.Skip())

		_, err := query.NewPaged[int](nil, 5, p)

		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Equal(t, "page: page 9223372036854775807 exceeds total pages 1\n", errs.ErrorMessage(err))
	})

	t.Run("second page of empty result is invalid", func(t *testing.T) {
		_, err := query.NewPaged[int](nil, 0, query.Page{Page: 2, Limit: 10})

		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	})
}

func TestMap(t *testing.T) {
	p, err := query.NewPaged([]int{1, 2}, 3, query.Page{Page: 1, Limit: 2})
	require.NoError(t, err)

	out := query.Map(p, func(n int) string { return string(rune('a' + n)) })

	assert.Equal(t, []string{"b", "c"}, out.Results)
	assert.Equal(t, p.TotalPages, out.TotalPages)
}
