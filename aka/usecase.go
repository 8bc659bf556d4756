package aka

import (
	"context"
	"strings"

	"moviedb/pkg/query"
	"moviedb/title"
)

type Service interface {
	List(ctx context.Context, f Filter, p query.Page) (query.Paged[Aka], error)
	ListForTitle(ctx context.Context, f Filter, p query.Page) (query.Paged[Aka], error)
	Get(ctx context.Context, titleID string, ordering int) (Aka, error)
	Create(ctx context.Context, a Aka) (Aka, error)
	Update(ctx context.Context, titleID string, ordering int, p Patch) (Aka, error)
	Delete(ctx context.Context, titleID string, ordering int) error
}

type Repository interface {
	Find(ctx context.Context, f Filter, p query.Page) ([]Aka, int64, error)
	GetByID(ctx context.Context, titleID string, ordering int) (Aka, error)
	// MaxOrdering is 0 when the title has no akas.
	MaxOrdering(ctx context.Context, titleID string) (int, error)
	Create(ctx context.Context, a Aka) error
	Update(ctx context.Context, titleID string, ordering int, p Patch) (Aka, error)
	Delete(ctx context.Context, titleID string, ordering int) error
}

type Titles interface {
	GetByID(ctx context.Context, tconst string) (title.Title, error)
}

type Usecase struct {
	r      Repository
	titles Titles
}

func NewUsecase(r Repository, titles Titles) *Usecase {
	return &Usecase{r: r, titles: titles}
}

func (uc *Usecase) List(ctx context.Context, f Filter, p query.Page) (query.Paged[Aka], error) {
	items, total, err := uc.r.Find(ctx, f, p)
	if err != nil {
		return query.Paged[Aka]{}, err
	}
	return query.NewPaged(items, total, p)
}

// ListForTitle lists the akas of f.TitleID, which must exist.
func (uc *Usecase) ListForTitle(ctx context.Context, f Filter, p query.Page) (query.Paged[Aka], error) {
	if _, err := uc.titles.GetByID(ctx, f.TitleID); err != nil {
		return query.Paged[Aka]{}, err
	}
	return uc.List(ctx, f, p)
}

func (uc *Usecase) Get(ctx context.Context, titleID string, ordering int) (Aka, error) {
	return uc.r.GetByID(ctx, titleID, ordering)
}

// Create assigns the next ordering of the title, starting at 1. Concurrent
// creates for one title may collide and surface as a conflict.
func (uc *Usecase) Create(ctx context.Context, a Aka) (Aka, error) {
	var fe query.FieldErrors
	if strings.TrimSpace(a.TitleID) == "" {
		fe = append(fe, query.FieldError{Field: "titleId", Message: query.MsgRequired})
	}
	if strings.TrimSpace(a.Title) == "" {
		fe = append(fe, query.FieldError{Field: "title", Message: query.MsgRequired})
	}
	if err := fe.Err(); err != nil {
		return Aka{}, err
	}
	if _, err := uc.titles.GetByID(ctx, a.TitleID); err != nil {
		return Aka{}, err
	}
	last, err := uc.r.MaxOrdering(ctx, a.TitleID)
	if err != nil {
		return Aka{}, err
	}
	a.Ordering = last + 1
	if a.Types == nil {
		a.Types = []string{}
	}
	if a.Attributes == nil {
		a.Attributes = []string{}
	}
	if err := uc.r.Create(ctx, a); err != nil {
		return Aka{}, err
	}
	return a, nil
}

func (uc *Usecase) Update(ctx context.Context, titleID string, ordering int, p Patch) (Aka, error) {
	if p.Empty() {
		return uc.r.GetByID(ctx, titleID, ordering)
	}
	return uc.r.Update(ctx, titleID, ordering, p)
}

func (uc *Usecase) Delete(ctx context.Context, titleID string, ordering int) error {
	return uc.r.Delete(ctx, titleID, ordering)
}
