package crew

import (
	"context"
	"strings"

	"moviedb/errs"
	"moviedb/person"
	"moviedb/pkg/query"
	"moviedb/title"
)

type Service interface {
	List(ctx context.Context, f Filter, p query.Page) (query.Paged[Crew], error)
	Get(ctx context.Context, tconst string, includeNames bool) (Crew, error)
	Create(ctx context.Context, c Crew) (Crew, error)
	Update(ctx context.Context, tconst string, p Patch) (Crew, error)
	Delete(ctx context.Context, tconst string) error
	AddMembers(ctx context.Context, tconst string, role Role, nconsts []string) (Crew, error)
	RemoveMember(ctx context.Context, tconst string, role Role, nconst string) (Crew, error)
}

type Repository interface {
	Find(ctx context.Context, f Filter, p query.Page) ([]Crew, int64, error)
	GetByID(ctx context.Context, tconst string, includeNames bool) (Crew, error)
	Create(ctx context.Context, c Crew) error
	Update(ctx context.Context, tconst string, p Patch) (Crew, error)
	Delete(ctx context.Context, tconst string) error
	AddMembers(ctx context.Context, tconst string, role Role, nconsts []string) (Crew, error)
	RemoveMember(ctx context.Context, tconst string, role Role, nconst string) (Crew, error)
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

func (uc *Usecase) List(ctx context.Context, f Filter, p query.Page) (query.Paged[Crew], error) {
	items, total, err := uc.r.Find(ctx, f, p)
	if err != nil {
		return query.Paged[Crew]{}, err
	}
	return query.NewPaged(items, total, p)
}

func (uc *Usecase) Get(ctx context.Context, tconst string, includeNames bool) (Crew, error) {
	return uc.r.GetByID(ctx, tconst, includeNames)
}

func (uc *Usecase) Create(ctx context.Context, c Crew) (Crew, error) {
	if strings.TrimSpace(c.Tconst) == "" {
		return Crew{}, query.FieldErrors{{Field: "tconst", Message: query.MsgRequired}}.Err()
	}
	if _, err := uc.titles.GetByID(ctx, c.Tconst); err != nil {
		return Crew{}, err
	}
	if err := uc.requireNames(ctx, c.Directors, c.Writers); err != nil {
		return Crew{}, err
	}
	if c.Directors == nil {
		c.Directors = []string{}
	}
	if c.Writers == nil {
		c.Writers = []string{}
	}
	if err := uc.r.Create(ctx, c); err != nil {
		return Crew{}, err
	}
	return c, nil
}

func (uc *Usecase) Update(ctx context.Context, tconst string, p Patch) (Crew, error) {
	if p.Empty() {
		return uc.r.GetByID(ctx, tconst, false)
	}
	if err := uc.requireNames(ctx, p.Directors, p.Writers); err != nil {
		return Crew{}, err
	}
	return uc.r.Update(ctx, tconst, p)
}

func (uc *Usecase) Delete(ctx context.Context, tconst string) error {
	return uc.r.Delete(ctx, tconst)
}

// AddMembers appends names to a role once the crew and every name are known.
// Names already listed are kept once.
func (uc *Usecase) AddMembers(ctx context.Context, tconst string, role Role, nconsts []string) (Crew, error) {
	if !role.Valid() {
		return Crew{}, errs.Errorf(errs.ENOTFOUND, "Role not found: %s", role)
	}
	if len(nconsts) == 0 {
		return Crew{}, query.FieldErrors{{Field: "nconsts", Message: query.MsgRequired}}.Err()
	}
	if _, err := uc.r.GetByID(ctx, tconst, false); err != nil {
		return Crew{}, err
	}
	if err := uc.requireNames(ctx, nconsts); err != nil {
		return Crew{}, err
	}
	return uc.r.AddMembers(ctx, tconst, role, union(nconsts))
}

func (uc *Usecase) RemoveMember(ctx context.Context, tconst string, role Role, nconst string) (Crew, error) {
	if !role.Valid() {
		return Crew{}, errs.Errorf(errs.ENOTFOUND, "Role not found: %s", role)
	}
	c, err := uc.r.GetByID(ctx, tconst, false)
	if err != nil {
		return Crew{}, err
	}
	if !contains(c.Members(role), nconst) {
		return Crew{}, errs.NotFound(role.Singular(), "tconst", tconst, "nconst", nconst)
	}
	return uc.r.RemoveMember(ctx, tconst, role, nconst)
}

func (uc *Usecase) requireNames(ctx context.Context, lists ...[]string) error {
	all := union(lists...)
	if len(all) == 0 {
		return nil
	}
	missing, err := uc.names.Missing(ctx, all)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return person.NotFound(missing)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
