package person

import (
	"moviedb/pkg/query"
	"moviedb/title"
)

// MaxProfessions caps primaryProfession.
const MaxProfessions = 3

// SortFields are the keys accepted by the sort parameter.
var SortFields = []string{"nconst", "primaryName", "birthYear", "deathYear"}

type Person struct {
	Nconst            string   `json:"nconst"`
	PrimaryName       string   `json:"primaryName"`
	BirthYear         *int     `json:"birthYear"`
	DeathYear         *int     `json:"deathYear"`
	PrimaryProfession []string `json:"primaryProfession"`
	KnownForTitles    []string `json:"knownForTitles"`
	Score             *float64 `json:"score,omitempty"`

	// Titles holds the resolved knownForTitles keyed by tconst, only when
	// requested.
	Titles map[string]title.Title `json:"titles,omitempty"`
}

type Patch struct {
	PrimaryName       *string
	BirthYear         *int
	DeathYear         *int
	PrimaryProfession []string
	KnownForTitles    []string
}

func (p Patch) Empty() bool {
	return p.PrimaryName == nil && p.BirthYear == nil && p.DeathYear == nil &&
		p.PrimaryProfession == nil && p.KnownForTitles == nil
}

type Filter struct {
	Professions []string
	BornSince   *int
	BornUntil   *int
	// Alive keeps people without (true) or with (false) a death year.
	Alive *bool
	Sort  []query.SortField
}

type SearchFilter struct {
	Query string
	Filter
}
