package httpserver

import (
	"github.com/labstack/echo/v4"

	"moviedb/aka"
	"moviedb/crew"
	"moviedb/episode"
	"moviedb/person"
	"moviedb/pkg/query"
	"moviedb/principal"
	"moviedb/title"
)

// queryReader fills itself from the query string. Coercion failures are
// recorded on v, constraint checks run afterwards through the validator.
type queryReader interface {
	read(v *query.Values)
}

// bindQuery reads and validates every reader against the same query string.
// A field that failed coercion is not reported twice.
func (s *Server) bindQuery(c echo.Context, readers ...queryReader) error {
	v := query.NewValues(c.QueryParams())
	for _, r := range readers {
		r.read(v)
	}
	fe := v.Errors()
	for _, r := range readers {
		fe = merge(fe, s.validator.FieldErrors(r))
	}
	return fe.Err()
}

func pathInt(c echo.Context, name string) (int, error) {
	n, fe := query.ParseInt(name, c.Param(name))
	if fe != nil {
		return 0, query.FieldErrors{*fe}.Err()
	}
	return n, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func flag(b *bool) bool {
	return b != nil && *b
}

// PageQuery is embedded by paginated listings.
type PageQuery struct {
	Page query.Page `json:"-" validate:"-"`
}

func (q *PageQuery) read(v *query.Values) { q.Page = v.Page() }

type SearchQuery struct {
	Q string `json:"q" validate:"required,notblank,max=200"`
}

func (q *SearchQuery) read(v *query.Values) { q.Q = deref(v.String("q")) }

type IncludeQuery struct {
	field   string
	Include bool `validate:"-"`
}

func (q *IncludeQuery) read(v *query.Values) { q.Include = flag(v.Bool(q.field)) }

type TitleQuery struct {
	TitleTypes []string          `json:"titleType" validate:"dive,titletype"`
	Genres     []string          `json:"genre" validate:"dive,notblank"`
	IsAdult    *bool             `json:"isAdult"`
	Since      *int              `json:"since" validate:"omitnil,min=0"`
	Until      *int              `json:"until" validate:"omitnil,min=0"`
	MinRuntime *int              `json:"minRuntime" validate:"omitnil,min=0"`
	MaxRuntime *int              `json:"maxRuntime" validate:"omitnil,min=0"`
	Sort       []query.SortField `json:"sort" validate:"-"`
}

func (q *TitleQuery) read(v *query.Values) {
	q.TitleTypes = v.Strings("titleType")
	q.Genres = v.Strings("genre")
	q.IsAdult = v.Bool("isAdult")
	q.Since = v.Int("since")
	q.Until = v.Int("until")
	q.MinRuntime = v.Int("minRuntime")
	q.MaxRuntime = v.Int("maxRuntime")
	q.Sort = v.Sort(title.SortFields...)
}

func (q TitleQuery) Filter() title.Filter {
	return title.Filter{
		TitleTypes: q.TitleTypes,
		Genres:     q.Genres,
		IsAdult:    q.IsAdult,
		Since:      q.Since,
		Until:      q.Until,
		MinRuntime: q.MinRuntime,
		MaxRuntime: q.MaxRuntime,
		Sort:       q.Sort,
	}
}

type PersonQuery struct {
	Professions []string          `json:"profession" validate:"dive,notblank"`
	BornSince   *int              `json:"bornSince" validate:"omitnil,min=0"`
	BornUntil   *int              `json:"bornUntil" validate:"omitnil,min=0"`
	Alive       *bool             `json:"alive"`
	Sort        []query.SortField `json:"sort" validate:"-"`
}

func (q *PersonQuery) read(v *query.Values) {
	q.Professions = v.Strings("profession")
	q.BornSince = v.Int("bornSince")
	q.BornUntil = v.Int("bornUntil")
	q.Alive = v.Bool("alive")
	q.Sort = v.Sort(person.SortFields...)
}

func (q PersonQuery) Filter() person.Filter {
	return person.Filter{
		Professions: q.Professions,
		BornSince:   q.BornSince,
		BornUntil:   q.BornUntil,
		Alive:       q.Alive,
		Sort:        q.Sort,
	}
}

type PrincipalQuery struct {
	Tconst       string   `json:"tconst" validate:"omitempty,tconst"`
	Nconst       string   `json:"nconst" validate:"omitempty,nconst"`
	Categories   []string `json:"category" validate:"dive,category"`
	IncludeNames bool     `json:"includeNames"`
}

func (q *PrincipalQuery) read(v *query.Values) {
	q.Tconst = deref(v.String("tconst"))
	q.Nconst = deref(v.String("nconst"))
	q.Categories = v.Strings("category")
	q.IncludeNames = flag(v.Bool("includeNames"))
}

func (q PrincipalQuery) Filter() principal.Filter {
	return principal.Filter{
		Tconst:       q.Tconst,
		Nconst:       q.Nconst,
		Categories:   q.Categories,
		IncludeNames: q.IncludeNames,
	}
}

type CrewQuery struct {
	Director string `json:"director" validate:"omitempty,nconst"`
	Writer   string `json:"writer" validate:"omitempty,nconst"`
}

func (q *CrewQuery) read(v *query.Values) {
	q.Director = deref(v.String("director"))
	q.Writer = deref(v.String("writer"))
}

func (q CrewQuery) Filter() crew.Filter {
	return crew.Filter{Director: q.Director, Writer: q.Writer}
}

type AkaQuery struct {
	TitleID         string  `json:"titleId" validate:"omitempty,tconst"`
	Region          *string `json:"region" validate:"omitnil,notblank"`
	Language        *string `json:"language" validate:"omitnil,notblank"`
	IsOriginalTitle *bool   `json:"isOriginalTitle"`
}

func (q *AkaQuery) read(v *query.Values) {
	q.TitleID = deref(v.String("titleId"))
	q.Region = v.String("region")
	q.Language = v.String("language")
	q.IsOriginalTitle = v.Bool("isOriginalTitle")
}

func (q AkaQuery) Filter() aka.Filter {
	return aka.Filter{
		TitleID:         q.TitleID,
		Region:          q.Region,
		Language:        q.Language,
		IsOriginalTitle: q.IsOriginalTitle,
	}
}

// TitleAkaQuery filters the akas of one title; the title comes from the path.
type TitleAkaQuery struct {
	Region          *string `json:"region" validate:"omitnil,notblank"`
	Language        *string `json:"language" validate:"omitnil,notblank"`
	IsOriginalTitle *bool   `json:"isOriginalTitle"`
}

func (q *TitleAkaQuery) read(v *query.Values) {
	q.Region = v.String("region")
	q.Language = v.String("language")
	q.IsOriginalTitle = v.Bool("isOriginalTitle")
}

func (q TitleAkaQuery) Filter(tconst string) aka.Filter {
	return aka.Filter{
		TitleID:         tconst,
		Region:          q.Region,
		Language:        q.Language,
		IsOriginalTitle: q.IsOriginalTitle,
	}
}

type EpisodeQuery struct {
	ParentTconst  string `json:"parentTconst" validate:"omitempty,tconst"`
	Season        *int   `json:"season" validate:"omitnil,min=0"`
	IncludeTitles bool   `json:"includeTitles"`
}

func (q *EpisodeQuery) read(v *query.Values) {
	q.ParentTconst = deref(v.String("parentTconst"))
	q.Season = v.Int("season")
	q.IncludeTitles = flag(v.Bool("includeTitles"))
}

func (q EpisodeQuery) Filter() episode.Filter {
	return episode.Filter{
		ParentTconst:  q.ParentTconst,
		Season:        q.Season,
		IncludeTitles: q.IncludeTitles,
	}
}
