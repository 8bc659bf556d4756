package principal

import (
	"context"
	"fmt"
	"strings"

	"moviedb/errs"
	"moviedb/person"
	"moviedb/pkg/query"
	"moviedb/title"
)

type Service interface {
	List(ctx context.Context, f Filter, p query.Page) (query.Paged[CastMember], error)
	Cast(ctx context.Context, f Filter, p query.Page) (query.Paged[CastMember], error)
	Get(ctx context.Context, tconst, nconst string) (CastMember, error)
	Create(ctx context.Context, p Principal) (Principal, error)
	Update(ctx context.Context, tconst, nconst string, ordering int, p Patch) (Principal, error)
	Delete(ctx context.Context, tconst, nconst string, ordering int) error
}

type Repository interface {
	// Find returns merged members, paginated over distinct pairs.
	Find(ctx context.Context, f Filter, p query.Page) ([]CastMember, int64, error)
	Rows(ctx context.Context, tconst, nconst string) ([]Principal, error)
	Create(ctx context.Context, p Principal) error
	Update(ctx context.Context, tconst, nconst string, ordering int, p Patch) (Principal, error)
	Delete(ctx context.Context, tconst, nconst string, ordering int) error
}

type Titles interface {
	GetByID(ctx context.Context, tconst string) (title.Title, error)
}

type Names interface {
	Missing(ctx context.Context, nconsts []string) ([]string, error)
}

type Usecase struct {
	r      Repository
	titles Titles
	names  Names
}

func NewUsecase(r Repository, titles Titles, names Names) *Usecase {
	return &Usecase{r: r, titles: titles, names: names}
}

func (uc *Usecase) List(ctx context.Context, f Filter, p query.Page) (query.Paged[CastMember], error) {
	items, total, err := uc.r.Find(ctx, f, p)
	if err != nil {
		return query.Paged[CastMember]{}, err
	}
	return query.NewPaged(items, total, p)
}

// Cast lists the members of one title, which must exist.
func (uc *Usecase) Cast(ctx context.Context, f Filter, p query.Page) (query.Paged[CastMember], error) {
	if _, err := uc.titles.GetByID(ctx, f.Tconst); err != nil {
		return query.Paged[CastMember]{}, err
	}
	return uc.List(ctx, f, p)
}

func (uc *Usecase) Get(ctx context.Context, tconst, nconst string) (CastMember, error) {
	rows, err := uc.r.Rows(ctx, tconst, nconst)
	if err != nil {
		return CastMember{}, err
	}
	if len(rows) == 0 {
		return CastMember{}, errs.NotFound("Principal", "tconst", tconst, "nconst", nconst)
	}
	return Merge(rows), nil
}

// Create inserts one row once the title and the name are known. The checks
// and the insert are not atomic.
func (uc *Usecase) Create(ctx context.Context, p Principal) (Principal, error) {
	if err := p.Validate(); err != nil {
		return Principal{}, err
	}
	if _, err := uc.titles.GetByID(ctx, p.Tconst); err != nil {
		return Principal{}, err
	}
	missing, err := uc.names.Missing(ctx, []string{p.Nconst})
	if err != nil {
		return Principal{}, err
	}
	if len(missing) > 0 {
		return Principal{}, person.NotFound(missing)
	}
	if p.Characters == nil {
		p.Characters = []string{}
	}
	if err := uc.r.Create(ctx, p); err != nil {
		return Principal{}, err
	}
	return p, nil
}

func (uc *Usecase) Update(ctx context.Context, tconst, nconst string, ordering int, p Patch) (Principal, error) {
	if p.Empty() {
		return uc.row(ctx, tconst, nconst, ordering)
	}
	if p.Category != nil && !isCategory(*p.Category) {
		return Principal{}, query.FieldErrors{categoryError()}.Err()
	}
	return uc.r.Update(ctx, tconst, nconst, ordering, p)
}

// row reads one stored row of the pair.
func (uc *Usecase) row(ctx context.Context, tconst, nconst string, ordering int) (Principal, error) {
	rows, err := uc.r.Rows(ctx, tconst, nconst)
	if err != nil {
		return Principal{}, err
	}
	for _, r := range rows {
		if r.Ordering == ordering {
			return r, nil
		}
	}
	return Principal{}, errs.NotFound("Principal", "tconst", tconst, "nconst", nconst, "ordering", ordering)
}

func (uc *Usecase) Delete(ctx context.Context, tconst, nconst string, ordering int) error {
	return uc.r.Delete(ctx, tconst, nconst, ordering)
}

func (p Principal) Validate() error {
	var fe query.FieldErrors
	if strings.TrimSpace(p.Tconst) == "" {
		fe = append(fe, query.FieldError{Field: "tconst", Message: query.MsgRequired})
	}
	if strings.TrimSpace(p.Nconst) == "" {
		fe = append(fe, query.FieldError{Field: "nconst", Message: query.MsgRequired})
	}
	if p.Ordering < 1 {
		fe = append(fe, query.FieldError{Field: "ordering", Message: "must be at least 1"})
	}
	if !isCategory(p.Category) {
		fe = append(fe, categoryError())
	}
	return fe.Err()
}

func categoryError() query.FieldError {
	return query.FieldError{
		Field:   "category",
		Message: fmt.Sprintf("must be one of [%s]", strings.Join(Categories, " ")),
	}
}
