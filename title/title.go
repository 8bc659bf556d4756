package title

import (
	"strings"

	"moviedb/pkg/query"
)

const (
	TypeMovie        = "movie"
	TypeShort        = "short"
	TypeTVSeries     = "tvSeries"
	TypeTVEpisode    = "tvEpisode"
	TypeTVMovie      = "tvMovie"
	TypeTVMiniSeries = "tvMiniSeries"
	TypeTVSpecial    = "tvSpecial"
	TypeTVShort      = "tvShort"
	TypeTVPilot      = "tvPilot"
	TypeVideo        = "video"
	TypeVideoGame    = "videoGame"
)

// Types lists every accepted titleType.
var Types = []string{
	TypeMovie, TypeShort, TypeTVSeries, TypeTVEpisode, TypeTVMovie, TypeTVMiniSeries,
	TypeTVSpecial, TypeTVShort, TypeTVPilot, TypeVideo, TypeVideoGame,
}

// SeriesTypes are the title types that may parent episodes.
var SeriesTypes = []string{TypeTVSeries, TypeTVMiniSeries}

// MaxGenres caps the genres of a title.
const MaxGenres = 3

// GenreSeparator joins genres in storage.
const GenreSeparator = ","

// SortFields are the keys accepted by the sort parameter.
var SortFields = []string{"tconst", "primaryTitle", "originalTitle", "startYear", "endYear", "runtimeMinutes"}

type Title struct {
	Tconst         string   `json:"tconst"`
	TitleType      string   `json:"titleType"`
	PrimaryTitle   string   `json:"primaryTitle"`
	OriginalTitle  string   `json:"originalTitle"`
	IsAdult        bool     `json:"isAdult"`
	StartYear      *int     `json:"startYear"`
	EndYear        *int     `json:"endYear"`
	RuntimeMinutes *int     `json:"runtimeMinutes"`
	Genres         []string `json:"genres"`
	Score          *float64 `json:"score,omitempty"`
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	TitleType      *string
	PrimaryTitle   *string
	OriginalTitle  *string
	IsAdult        *bool
	StartYear      *int
	EndYear        *int
	RuntimeMinutes *int
	Genres         []string
}

func (p Patch) Empty() bool {
	return p.TitleType == nil && p.PrimaryTitle == nil && p.OriginalTitle == nil && p.IsAdult == nil &&
		p.StartYear == nil && p.EndYear == nil && p.RuntimeMinutes == nil && p.Genres == nil
}

// Filter is ANDed across fields; slices match any of their values.
type Filter struct {
	TitleTypes []string
	Genres     []string
	IsAdult    *bool
	Since      *int
	Until      *int
	MinRuntime *int
	MaxRuntime *int
	Sort       []query.SortField
}

type SearchFilter struct {
	Query string
	Filter
}

func IsSeries(titleType string) bool {
	for _, t := range SeriesTypes {
		if t == titleType {
			return true
		}
	}
	return false
}

// JoinGenres produces the delimited storage form of genres.
func JoinGenres(genres []string) string {
	return strings.Join(genres, GenreSeparator)
}

// SplitGenres produces the array view of the stored genres, keeping order.
func SplitGenres(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, GenreSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
