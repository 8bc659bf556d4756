package title

import (
	"context"
	"fmt"
	"strings"

	"moviedb/pkg/query"
)

type Service interface {
	List(ctx context.Context, f Filter, p query.Page) (query.Paged[Title], error)
	Search(ctx context.Context, f SearchFilter, p query.Page) (query.Paged[Title], error)
	Get(ctx context.Context, tconst string) (Title, error)
	Create(ctx context.Context, t Title) (Title, error)
	Update(ctx context.Context, tconst string, p Patch) (Title, error)
	Delete(ctx context.Context, tconst string) error
}

type Repository interface {
	Find(ctx context.Context, f Filter, p query.Page) ([]Title, int64, error)
	Search(ctx context.Context, f SearchFilter, p query.Page) ([]Title, int64, error)
	GetByID(ctx context.Context, tconst string) (Title, error)
	Create(ctx context.Context, t Title) error
	Update(ctx context.Context, tconst string, p Patch) (Title, error)
	Delete(ctx context.Context, tconst string) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) List(ctx context.Context, f Filter, p query.Page) (query.Paged[Title], error) {
	items, total, err := uc.r.Find(ctx, f, p)
	if err != nil {
		return query.Paged[Title]{}, err
	}
	return query.NewPaged(items, total, p)
}

func (uc *Usecase) Search(ctx context.Context, f SearchFilter, p query.Page) (query.Paged[Title], error) {
	f.Query = strings.TrimSpace(f.Query)
	if f.Query == "" {
		return query.Paged[Title]{}, query.FieldErrors{{Field: "q", Message: query.MsgRequired}}.Err()
	}
	items, total, err := uc.r.Search(ctx, f, p)
	if err != nil {
		return query.Paged[Title]{}, err
	}
	return query.NewPaged(items, total, p)
}

func (uc *Usecase) Get(ctx context.Context, tconst string) (Title, error) {
	return uc.r.GetByID(ctx, tconst)
}

func (uc *Usecase) Create(ctx context.Context, t Title) (Title, error) {
	if err := t.Validate(); err != nil {
		return Title{}, err
	}
	if t.Genres == nil {
		t.Genres = []string{}
	}
	if err := uc.r.Create(ctx, t); err != nil {
		return Title{}, err
	}
	return t, nil
}

// Update applies a partial change. Year ordering is checked against the
// stored title when only one side of the range is patched.
func (uc *Usecase) Update(ctx context.Context, tconst string, p Patch) (Title, error) {
	if p.Empty() {
		return uc.r.GetByID(ctx, tconst)
	}
	var fe query.FieldErrors
	for i, g := range p.Genres {
		if strings.Contains(g, GenreSeparator) {
			fe = append(fe, genreSeparatorError(i))
		}
	}
	if len(fe) > 0 {
		return Title{}, fe.Err()
	}
	if p.StartYear != nil || p.EndYear != nil {
		current, err := uc.r.GetByID(ctx, tconst)
		if err != nil {
			return Title{}, err
		}
		start, end := current.StartYear, current.EndYear
		if p.StartYear != nil {
			start = p.StartYear
		}
		if p.EndYear != nil {
			end = p.EndYear
		}
		if ye := checkYears(start, end); ye != nil {
			return Title{}, query.FieldErrors{*ye}.Err()
		}
	}
	return uc.r.Update(ctx, tconst, p)
}

func (uc *Usecase) Delete(ctx context.Context, tconst string) error {
	return uc.r.Delete(ctx, tconst)
}

// Validate checks the invariants of a complete title.
func (t Title) Validate() error {
	var fe query.FieldErrors
	if strings.TrimSpace(t.Tconst) == "" {
		fe = append(fe, query.FieldError{Field: "tconst", Message: query.MsgRequired})
	}
	if !isType(t.TitleType) {
		fe = append(fe, query.FieldError{Field: "titleType", Message: fmt.Sprintf("must be one of [%s]", strings.Join(Types, " "))})
	}
	if len(t.Genres) > MaxGenres {
		fe = append(fe, query.FieldError{Field: "genres", Message: fmt.Sprintf("must contain at most %d items", MaxGenres)})
	}
	for i, g := range t.Genres {
		if strings.Contains(g, GenreSeparator) {
			fe = append(fe, genreSeparatorError(i))
		}
	}
	if ye := checkYears(t.StartYear, t.EndYear); ye != nil {
		fe = append(fe, *ye)
	}
	return fe.Err()
}

func genreSeparatorError(i int) query.FieldError {
	return query.FieldError{Field: fmt.Sprintf("genres[%d]", i), Message: fmt.Sprintf("must not contain %q", GenreSeparator)}
}

func checkYears(start, end *int) *query.FieldError {
	if start != nil && end != nil && *end < *start {
		return &query.FieldError{Field: "endYear", Message: "must be greater than or equal to startYear"}
	}
	return nil
}

func isType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}
