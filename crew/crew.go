package crew

import "moviedb/person"

// Role selects one of the member lists of a crew.
type Role string

const (
	Directors Role = "directors"
	Writers   Role = "writers"
)

func (r Role) Valid() bool {
	return r == Directors || r == Writers
}

// Singular names one member of the role in messages.
func (r Role) Singular() string {
	if r == Writers {
		return "Writer"
	}
	return "Director"
}

type Crew struct {
	Tconst    string   `json:"tconst"`
	Directors []string `json:"directors"`
	Writers   []string `json:"writers"`

	// Names resolves every director and writer keyed by nconst, only when
	// requested.
	Names map[string]person.Person `json:"names,omitempty"`
}

// Members returns the list for role.
func (c Crew) Members(role Role) []string {
	if role == Writers {
		return c.Writers
	}
	return c.Directors
}

// Patch replaces whole member lists; nil leaves a list untouched.
type Patch struct {
	Directors []string
	Writers   []string
}

func (p Patch) Empty() bool {
	return p.Directors == nil && p.Writers == nil
}

type Filter struct {
	Director string
	Writer   string
}

// union returns every distinct nconst across lists, in first-seen order.
func union(lists ...[]string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, l := range lists {
		for _, n := range l {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
