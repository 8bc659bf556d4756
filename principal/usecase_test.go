package principal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviedb/errs"
	"moviedb/pkg/query"
	"moviedb/principal"
	"moviedb/title"
)

type MockPrincipalRepository struct {
	mock.Mock
}

func (m *MockPrincipalRepository) Find(ctx context.Context, f principal.Filter, p query.Page) ([]principal.CastMember, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]principal.CastMember), args.Get(1).(int64), args.Error(2)
}

func (m *MockPrincipalRepository) Rows(ctx context.Context, tconst, nconst string) ([]principal.Principal, error) {
	args := m.Called(ctx, tconst, nconst)
	return args.Get(0).([]principal.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) Create(ctx context.Context, p principal.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPrincipalRepository) Update(ctx context.Context, tconst, nconst string, ordering int, p principal.Patch) (principal.Principal, error) {
	args := m.Called(ctx, tconst, nconst, ordering, p)
	return args.Get(0).(principal.Principal), args.Error(1)
}

func (m *MockPrincipalRepository) Delete(ctx context.Context, tconst, nconst string, ordering int) error {
	return m.Called(ctx, tconst, nconst, ordering).Error(0)
}

type MockTitles struct {
	mock.Mock
}

func (m *MockTitles) GetByID(ctx context.Context, tconst string) (title.Title, error) {
	args := m.Called(ctx, tconst)
	return args.Get(0).(title.Title), args.Error(1)
}

type MockNames struct {
	mock.Mock
}

func (m *MockNames) Missing(ctx context.Context, nconsts []string) ([]string, error) {
	args := m.Called(ctx, nconsts)
	return args.Get(0).([]string), args.Error(1)
}

func newUsecase() (*principal.Usecase, *MockPrincipalRepository, *MockTitles, *MockNames) {
	r, titles, names := new(MockPrincipalRepository), new(MockTitles), new(MockNames)
	return principal.NewUsecase(r, titles, names), r, titles, names
}

func validPrincipal() principal.Principal {
	return principal.Principal{
		Tconst:     "tt4154796",
		Nconst:     "nm0000375",
		Ordering:   1,
		Category:   principal.CategoryActor,
		Characters: []string{"Tony Stark"},
	}
}

func TestCreate(t *testing.T) {
	t.Run("creates when title and name exist", func(t *testing.T) {
		uc, r, titles, names := newUsecase()
		p := validPrincipal()
		titles.On("GetByID", mock.Anything, p.Tconst).Return(title.Title{Tconst: p.Tconst}, nil).Once()
		names.On("Missing", mock.Anything, []string{p.Nconst}).Return([]string{}, nil).Once()
		r.On("Create", mock.Anything, p).Return(nil).Once()

		got, err := uc.Create(context.Background(), p)

		require.NoError(t, err)
		assert.Equal(t, p, got)
		r.AssertExpectations(t)
	})

	t.Run("unknown title", func(t *testing.T) {
		uc, r, titles, _ := newUsecase()
		p := validPrincipal()
		titles.On("GetByID", mock.Anything, p.Tconst).Return(title.Title{}, errs.NotFound("Title", "tconst", p.Tconst)).Once()

		_, err := uc.Create(context.Background(), p)

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
		r.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown name", func(t *testing.T) {
		uc, r, titles, names := newUsecase()
		p := validPrincipal()
		titles.On("GetByID", mock.Anything, p.Tconst).Return(title.Title{Tconst: p.Tconst}, nil).Once()
		names.On("Missing", mock.Anything, []string{p.Nconst}).Return([]string{p.Nconst}, nil).Once()

		_, err := uc.Create(context.Background(), p)

		assert.Equal(t, "Name not found: nconst=nm0000375", errs.ErrorMessage(err))
		r.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid row", func(t *testing.T) {
		uc, _, titles, _ := newUsecase()

		_, err := uc.Create(context.Background(), principal.Principal{Tconst: "tt1", Nconst: "nm1", Category: "grip"})

		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Contains(t, errs.ErrorMessage(err), "ordering: must be at least 1\n")
		assert.Contains(t, errs.ErrorMessage(err), "category: must be one of [actor actress")
		titles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestGet(t *testing.T) {
	t.Run("merges rows of the pair", func(t *testing.T) {
		uc, r, _, _ := newUsecase()
		r.On("Rows", mock.Anything, "tt1", "nm1").Return([]principal.Principal{
			{Tconst: "tt1", Nconst: "nm1", Ordering: 4, Category: "actor", Characters: []string{"B"}},
			{Tconst: "tt1", Nconst: "nm1", Ordering: 2, Category: "actor", Characters: []string{"A"}},
		}, nil).Once()

		got, err := uc.Get(context.Background(), "tt1", "nm1")

		require.NoError(t, err)
		assert.Equal(t, []int{2, 4}, got.Ordering)
		assert.Equal(t, []string{"A", "B"}, got.Characters)
	})

	t.Run("no rows is not found", func(t *testing.T) {
		uc, r, _, _ := newUsecase()
		r.On("Rows", mock.Anything, "tt1", "nm9").Return([]principal.Principal{}, nil).Once()

		_, err := uc.Get(context.Background(), "tt1", "nm9")

		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
		assert.Equal(t, "Principal not found: tconst=tt1, nconst=nm9", errs.ErrorMessage(err))
	})
}

func TestCast_RequiresTitle(t *testing.T) {
	uc, r, titles, _ := newUsecase()
	titles.On("GetByID", mock.Anything, "tt404").Return(title.Title{}, errs.NotFound("Title", "tconst", "tt404")).Once()

	_, err := uc.Cast(context.Background(), principal.Filter{Tconst: "tt404"}, query.Page{Page: 1, Limit: 10})

	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	r.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_RejectsUnknownCategory(t *testing.T) {
	uc, r, _, _ := newUsecase()
	category := "grip"

	_, err := uc.Update(context.Background(), "tt1", "nm1", 1, principal.Patch{Category: &category})

	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	r.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_EmptyPatchReturnsTheRow(t *testing.T) {
	uc, r, _, _ := newUsecase()
	rows := []principal.Principal{
		{Tconst: "tt1", Nconst: "nm1", Ordering: 1, Category: principal.CategoryActor},
		{Tconst: "tt1", Nconst: "nm1", Ordering: 4, Category: principal.CategoryProducer},
	}
	r.On("Rows", mock.Anything, "tt1", "nm1").Return(rows, nil).Twice()

	got, err := uc.Update(context.Background(), "tt1", "nm1", 4, principal.Patch{})

	require.NoError(t, err)
	assert.Equal(t, rows[1], got)

	_, err = uc.Update(context.Background(), "tt1", "nm1", 2, principal.Patch{})

	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	assert.Equal(t, "Principal not found: tconst=tt1, nconst=nm1, ordering=2", errs.ErrorMessage(err))
	r.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
