package principal_test

import (
	"sort"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"moviedb/principal"
)

func rowsFor(orderings []int) []principal.Principal {
	rows := make([]principal.Principal, len(orderings))
	for i, o := range orderings {
		job := "job" + strconv.Itoa(o)
		rows[i] = principal.Principal{
			Tconst:     "tt1",
			Nconst:     "nm1",
			Ordering:   o,
			Category:   principal.Categories[o%len(principal.Categories)],
			Job:        &job,
			Characters: []string{"c" + strconv.Itoa(o)},
		}
	}
	return rows
}

func TestProperty_Merge(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	distinct := gen.SliceOf(gen.IntRange(1, 50)).Map(func(in []int) []int {
		seen := map[int]bool{}
		out := []int{}
		for _, v := range in {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
		return out
	}).SuchThat(func(in []int) bool { return len(in) > 0 })

	properties.Property("orderings come out ascending and complete", prop.ForAll(
		func(orderings []int) bool {
			m := principal.Merge(rowsFor(orderings))
			return len(m.Ordering) == len(orderings) && sort.IntsAreSorted(m.Ordering)
		},
		distinct,
	))

	properties.Property("characters follow ordering", prop.ForAll(
		func(orderings []int) bool {
			m := principal.Merge(rowsFor(orderings))
			for i, o := range m.Ordering {
				if m.Characters[i] != "c"+strconv.Itoa(o) {
					return false
				}
			}
			return true
		},
		distinct,
	))

	properties.Property("category is the one of the lowest ordering", prop.ForAll(
		func(orderings []int) bool {
			m := principal.Merge(rowsFor(orderings))
			return m.Category == principal.Categories[m.Ordering[0]%len(principal.Categories)]
		},
		distinct,
	))

	properties.TestingRun(t)
}

func TestMerge_SkipsEmptyJobs(t *testing.T) {
	empty := ""
	m := principal.Merge([]principal.Principal{
		{Tconst: "tt1", Nconst: "nm1", Ordering: 1, Category: "actor", Job: &empty},
		{Tconst: "tt1", Nconst: "nm1", Ordering: 2, Category: "actor"},
	})

	assert.Equal(t, []string{}, m.Jobs)
	assert.Equal(t, []string{"actor"}, m.Categories)
	assert.Equal(t, []string{}, m.Characters)
}
