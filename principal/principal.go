package principal

import (
	"sort"

	"moviedb/person"
)

const (
	CategoryActor              = "actor"
	CategoryActress            = "actress"
	CategorySelf               = "self"
	CategoryDirector           = "director"
	CategoryWriter             = "writer"
	CategoryProducer           = "producer"
	CategoryComposer           = "composer"
	CategoryCinematographer    = "cinematographer"
	CategoryEditor             = "editor"
	CategoryProductionDesigner = "production_designer"
	CategoryCastingDirector    = "casting_director"
	CategoryArchiveFootage     = "archive_footage"
	CategoryArchiveSound       = "archive_sound"
)

var Categories = []string{
	CategoryActor, CategoryActress, CategorySelf, CategoryDirector, CategoryWriter,
	CategoryProducer, CategoryComposer, CategoryCinematographer, CategoryEditor,
	CategoryProductionDesigner, CategoryCastingDirector, CategoryArchiveFootage, CategoryArchiveSound,
}

// Principal is one stored credit row.
type Principal struct {
	Tconst     string   `json:"tconst"`
	Nconst     string   `json:"nconst"`
	Ordering   int      `json:"ordering"`
	Category   string   `json:"category"`
	Job        *string  `json:"job"`
	Characters []string `json:"characters"`
}

// CastMember folds every row sharing tconst and nconst.
type CastMember struct {
	Tconst     string         `json:"tconst"`
	Nconst     string         `json:"nconst"`
	Category   string         `json:"category"`
	Categories []string       `json:"categories"`
	Ordering   []int          `json:"ordering"`
	Characters []string       `json:"characters"`
	Jobs       []string       `json:"jobs"`
	Name       *person.Person `json:"name,omitempty"`
}

type Patch struct {
	Category   *string
	Job        *string
	Characters []string
}

func (p Patch) Empty() bool {
	return p.Category == nil && p.Job == nil && p.Characters == nil
}

type Filter struct {
	Tconst       string
	Nconst       string
	Categories   []string
	IncludeNames bool
}

// Merge folds rows of one tconst/nconst pair, in ascending ordering. The
// category of the lowest ordering wins.
func Merge(rows []Principal) CastMember {
	sorted := make([]Principal, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ordering < sorted[j].Ordering
	})

	m := CastMember{
		Categories: []string{},
		Ordering:   []int{},
		Characters: []string{},
		Jobs:       []string{},
	}
	seen := map[string]bool{}
	for i, r := range sorted {
		if i == 0 {
			m.Tconst, m.Nconst, m.Category = r.Tconst, r.Nconst, r.Category
		}
		if !seen[r.Category] {
			seen[r.Category] = true
			m.Categories = append(m.Categories, r.Category)
		}
		m.Ordering = append(m.Ordering, r.Ordering)
		m.Characters = append(m.Characters, r.Characters...)
		if r.Job != nil && *r.Job != "" {
			m.Jobs = append(m.Jobs, *r.Job)
		}
	}
	return m
}

func isCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
