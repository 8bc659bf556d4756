package episode

import (
	"context"
	"fmt"
	"strings"

	"moviedb/pkg/query"
	"moviedb/title"
)

type Service interface {
	List(ctx context.Context, f Filter, p query.Page) (query.Paged[Episode], error)
	Seasons(ctx context.Context, f Filter) ([]Season, error)
	Get(ctx context.Context, tconst string) (Episode, error)
	Create(ctx context.Context, e Episode) (Episode, error)
	Update(ctx context.Context, tconst string, p Patch) (Episode, error)
	Delete(ctx context.Context, tconst string) error
}

type Repository interface {
	Find(ctx context.Context, f Filter, p query.Page) ([]Episode, int64, error)
	Seasons(ctx context.Context, f Filter) ([]Season, error)
	GetByID(ctx context.Context, tconst string) (Episode, error)
	Create(ctx context.Context, e Episode) error
	Update(ctx context.Context, tconst string, p Patch) (Episode, error)
	Delete(ctx context.Context, tconst string) error
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

func (uc *Usecase) List(ctx context.Context, f Filter, p query.Page) (query.Paged[Episode], error) {
	items, total, err := uc.r.Find(ctx, f, p)
	if err != nil {
		return query.Paged[Episode]{}, err
	}
	return query.NewPaged(items, total, p)
}

// Seasons groups the episodes of f.ParentTconst, which must exist.
func (uc *Usecase) Seasons(ctx context.Context, f Filter) ([]Season, error) {
	if _, err := uc.titles.GetByID(ctx, f.ParentTconst); err != nil {
		return nil, err
	}
	seasons, err := uc.r.Seasons(ctx, f)
	if err != nil {
		return nil, err
	}
	if seasons == nil {
		seasons = []Season{}
	}
	return seasons, nil
}

func (uc *Usecase) Get(ctx context.Context, tconst string) (Episode, error) {
	return uc.r.GetByID(ctx, tconst)
}

func (uc *Usecase) Create(ctx context.Context, e Episode) (Episode, error) {
	var fe query.FieldErrors
	if strings.TrimSpace(e.Tconst) == "" {
		fe = append(fe, query.FieldError{Field: "tconst", Message: query.MsgRequired})
	}
	if strings.TrimSpace(e.ParentTconst) == "" {
		fe = append(fe, query.FieldError{Field: "parentTconst", Message: query.MsgRequired})
	}
	if err := fe.Err(); err != nil {
		return Episode{}, err
	}
	if err := uc.checkParent(ctx, e.ParentTconst); err != nil {
		return Episode{}, err
	}
	if err := uc.r.Create(ctx, e); err != nil {
		return Episode{}, err
	}
	return e, nil
}

func (uc *Usecase) Update(ctx context.Context, tconst string, p Patch) (Episode, error) {
	if p.Empty() {
		return uc.r.GetByID(ctx, tconst)
	}
	if p.ParentTconst != nil {
		if err := uc.checkParent(ctx, *p.ParentTconst); err != nil {
			return Episode{}, err
		}
	}
	return uc.r.Update(ctx, tconst, p)
}

func (uc *Usecase) Delete(ctx context.Context, tconst string) error {
	return uc.r.Delete(ctx, tconst)
}

// checkParent requires an existing parent of a series type. A parent of any
// other type is invalid input rather than missing.
func (uc *Usecase) checkParent(ctx context.Context, parent string) error {
	t, err := uc.titles.GetByID(ctx, parent)
	if err != nil {
		return err
	}
	if !title.IsSeries(t.TitleType) {
		return query.FieldErrors{{
			Field: "parentTconst",
			Message: fmt.Sprintf("must reference a series title [%s], got %s",
				strings.Join(title.SeriesTypes, " "), t.TitleType),
		}}.Err()
	}
	return nil
}
