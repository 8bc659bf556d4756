package person

import (
	"context"
	"fmt"
	"strings"

	"moviedb/errs"
	"moviedb/pkg/query"
)

type Service interface {
	List(ctx context.Context, f Filter, p query.Page) (query.Paged[Person], error)
	Search(ctx context.Context, f SearchFilter, p query.Page) (query.Paged[Person], error)
	Get(ctx context.Context, nconst string, includeTitles bool) (Person, error)
	Create(ctx context.Context, p Person) (Person, error)
	Update(ctx context.Context, nconst string, p Patch) (Person, error)
	Delete(ctx context.Context, nconst string) error
}

type Repository interface {
	Find(ctx context.Context, f Filter, p query.Page) ([]Person, int64, error)
	Search(ctx context.Context, f SearchFilter, p query.Page) ([]Person, int64, error)
	GetByID(ctx context.Context, nconst string, includeTitles bool) (Person, error)
	// Missing returns the subset of nconsts that have no stored person.
	Missing(ctx context.Context, nconsts []string) ([]string, error)
	Create(ctx context.Context, p Person) error
	Update(ctx context.Context, nconst string, p Patch) (Person, error)
	Delete(ctx context.Context, nconst string) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) List(ctx context.Context, f Filter, p query.Page) (query.Paged[Person], error) {
	items, total, err := uc.r.Find(ctx, f, p)
	if err != nil {
		return query.Paged[Person]{}, err
	}
	return query.NewPaged(items, total, p)
}

func (uc *Usecase) Search(ctx context.Context, f SearchFilter, p query.Page) (query.Paged[Person], error) {
	f.Query = strings.TrimSpace(f.Query)
	if f.Query == "" {
		return query.Paged[Person]{}, query.FieldErrors{{Field: "q", Message: query.MsgRequired}}.Err()
	}
	items, total, err := uc.r.Search(ctx, f, p)
	if err != nil {
		return query.Paged[Person]{}, err
	}
	return query.NewPaged(items, total, p)
}

func (uc *Usecase) Get(ctx context.Context, nconst string, includeTitles bool) (Person, error) {
	return uc.r.GetByID(ctx, nconst, includeTitles)
}

func (uc *Usecase) Create(ctx context.Context, p Person) (Person, error) {
	if err := p.Validate(); err != nil {
		return Person{}, err
	}
	if p.PrimaryProfession == nil {
		p.PrimaryProfession = []string{}
	}
	if p.KnownForTitles == nil {
		p.KnownForTitles = []string{}
	}
	if err := uc.r.Create(ctx, p); err != nil {
		return Person{}, err
	}
	return p, nil
}

func (uc *Usecase) Update(ctx context.Context, nconst string, p Patch) (Person, error) {
	if p.Empty() {
		return uc.r.GetByID(ctx, nconst, false)
	}
	if len(p.PrimaryProfession) > MaxProfessions {
		return Person{}, query.FieldErrors{professionsError()}.Err()
	}
	if p.BirthYear != nil || p.DeathYear != nil {
		current, err := uc.r.GetByID(ctx, nconst, false)
		if err != nil {
			return Person{}, err
		}
		birth, death := current.BirthYear, current.DeathYear
		if p.BirthYear != nil {
			birth = p.BirthYear
		}
		if p.DeathYear != nil {
			death = p.DeathYear
		}
		if ye := checkYears(birth, death); ye != nil {
			return Person{}, query.FieldErrors{*ye}.Err()
		}
	}
	return uc.r.Update(ctx, nconst, p)
}

func (uc *Usecase) Delete(ctx context.Context, nconst string) error {
	return uc.r.Delete(ctx, nconst)
}

// Validate checks the invariants of a complete person.
func (p Person) Validate() error {
	var fe query.FieldErrors
	if strings.TrimSpace(p.Nconst) == "" {
		fe = append(fe, query.FieldError{Field: "nconst", Message: query.MsgRequired})
	}
	if strings.TrimSpace(p.PrimaryName) == "" {
		fe = append(fe, query.FieldError{Field: "primaryName", Message: query.MsgRequired})
	}
	if len(p.PrimaryProfession) > MaxProfessions {
		fe = append(fe, professionsError())
	}
	if ye := checkYears(p.BirthYear, p.DeathYear); ye != nil {
		fe = append(fe, *ye)
	}
	return fe.Err()
}

func professionsError() query.FieldError {
	return query.FieldError{
		Field:   "primaryProfession",
		Message: fmt.Sprintf("must contain at most %d items", MaxProfessions),
	}
}

func checkYears(birth, death *int) *query.FieldError {
	if birth != nil && death != nil && *death < *birth {
		return &query.FieldError{Field: "deathYear", Message: "must be greater than or equal to birthYear"}
	}
	return nil
}

// NotFound names every nconst that could not be resolved.
func NotFound(missing []string) error {
	return errs.NotFound("Name", "nconst", strings.Join(missing, ","))
}
