package aka_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviedb/aka"
	"moviedb/errs"
	"moviedb/pkg/query"
	"moviedb/title"
)

type MockAkaRepository struct {
	mock.Mock
}

func (m *MockAkaRepository) Find(ctx context.Context, f aka.Filter, p query.Page) ([]aka.Aka, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]aka.Aka), args.Get(1).(int64), args.Error(2)
}

func (m *MockAkaRepository) GetByID(ctx context.Context, titleID string, ordering int) (aka.Aka, error) {
	args := m.Called(ctx, titleID, ordering)
	return args.Get(0).(aka.Aka), args.Error(1)
}

func (m *MockAkaRepository) MaxOrdering(ctx context.Context, titleID string) (int, error) {
	args := m.Called(ctx, titleID)
	return args.Int(0), args.Error(1)
}

func (m *MockAkaRepository) Create(ctx context.Context, a aka.Aka) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAkaRepository) Update(ctx context.Context, titleID string, ordering int, p aka.Patch) (aka.Aka, error) {
	args := m.Called(ctx, titleID, ordering, p)
	return args.Get(0).(aka.Aka), args.Error(1)
}

func (m *MockAkaRepository) Delete(ctx context.Context, titleID string, ordering int) error {
	return m.Called(ctx, titleID, ordering).Error(0)
}

type MockTitles struct {
	mock.Mock
}

func (m *MockTitles) GetByID(ctx context.Context, tconst string) (title.Title, error) {
	args := m.Called(ctx, tconst)
	return args.Get(0).(title.Title), args.Error(1)
}

func TestCreate_AssignsOrdering(t *testing.T) {
	tests := []struct {
		name string
		max  int
		want int
	}{
		{name: "first aka of a title", max: 0, want: 1},
		{name: "after existing akas", max: 5, want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, titles := new(MockAkaRepository), new(MockTitles)
			uc := aka.NewUsecase(r, titles)
			titles.On("GetByID", mock.Anything, "tt1").Return(title.Title{Tconst: "tt1"}, nil).Once()
			r.On("MaxOrdering", mock.Anything, "tt1").Return(tt.max, nil).Once()
			r.On("Create", mock.Anything, mock.MatchedBy(func(a aka.Aka) bool {
				return a.Ordering == tt.want
			})).Return(nil).Once()

			got, err := uc.Create(context.Background(), aka.Aka{TitleID: "tt1", Title: "Vengadores", Ordering: 42})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Ordering)
			assert.Equal(t, []string{}, got.Types)
			r.AssertExpectations(t)
		})
	}
}

func TestCreate_UnknownTitle(t *testing.T) {
	r, titles := new(MockAkaRepository), new(MockTitles)
	uc := aka.NewUsecase(r, titles)
	titles.On("GetByID", mock.Anything, "tt404").Return(title.Title{}, errs.NotFound("Title", "tconst", "tt404")).Once()

	_, err := uc.Create(context.Background(), aka.Aka{TitleID: "tt404", Title: "x"})

	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	r.AssertNotCalled(t, "MaxOrdering", mock.Anything, mock.Anything)
}

func TestCreate_RequiresFields(t *testing.T) {
	uc := aka.NewUsecase(new(MockAkaRepository), new(MockTitles))

	_, err := uc.Create(context.Background(), aka.Aka{})

	assert.Equal(t, "titleId: must be provided\ntitle: must be provided\n", errs.ErrorMessage(err))
}

func TestListForTitle(t *testing.T) {
	r, titles := new(MockAkaRepository), new(MockTitles)
	uc := aka.NewUsecase(r, titles)
	f := aka.Filter{TitleID: "tt1"}
	p := query.Page{Page: 1, Limit: 2}
	titles.On("GetByID", mock.Anything, "tt1").Return(title.Title{Tconst: "tt1"}, nil).Once()
	r.On("Find", mock.Anything, f, p).Return([]aka.Aka{{Ordering: 1}, {Ordering: 2}}, int64(5), nil).Once()

	got, err := uc.ListForTitle(context.Background(), f, p)

	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, 1, got.CurrentPage)
	assert.Len(t, got.Results, 2)
}

func TestDelete_Twice(t *testing.T) {
	r := new(MockAkaRepository)
	uc := aka.NewUsecase(r, new(MockTitles))
	r.On("Delete", mock.Anything, "tt1", 1).Return(nil).Once()
	r.On("Delete", mock.Anything, "tt1", 1).Return(errs.NotFound("Aka", "titleId", "tt1", "ordering", 1)).Once()

	require.NoError(t, uc.Delete(context.Background(), "tt1", 1))
	err := uc.Delete(context.Background(), "tt1", 1)

	assert.Equal(t, "Aka not found: titleId=tt1, ordering=1", errs.ErrorMessage(err))
}
