package httpserver_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviedb/crew"
	"moviedb/errs"
	"moviedb/pkg/query"
)

func TestListCrews(t *testing.T) {
	server, m := newMockedServer()
	m.crews.On("List", anyCtx, crew.Filter{Director: "nm0751577"}, defaultPage()).
		Return(query.Paged[crew.Crew]{Results: []crew.Crew{}}, nil).Once()

	rec := get(server, "/api/v1/crews?director=nm0751577")

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m.crews.AssertExpectations(t)
}

func TestCreateCrew(t *testing.T) {
	t.Run("should create the crew", func(t *testing.T) {
		server, m := newMockedServer()
		want := crew.Crew{Tconst: "tt4154796", Directors: []string{"nm0751577"}}
		m.crews.On("Create", anyCtx, want).Return(want, nil).Once()

		rec := sendJSON(server, http.MethodPost, "/api/v1/crews", `{"tconst":"tt4154796","directors":["nm0751577"]}`)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		m.crews.AssertExpectations(t)
	})

	t.Run("should validate member ids", func(t *testing.T) {
		server, _ := newMockedServer()

		rec := sendJSON(server, http.MethodPost, "/api/v1/crews", `{"tconst":"tt4154796","writers":["nm0751577","x"]}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "writers[1]: must be a valid nconst\n", decodeErrorResponse(t, rec).Message)
	})
}

func TestUpdateCrew(t *testing.T) {
	server, m := newMockedServer()
	patch := crew.Patch{Writers: []string{}}
	m.crews.On("Update", anyCtx, "tt4154796", patch).Return(crew.Crew{Tconst: "tt4154796"}, nil).Once()

	rec := sendJSON(server, http.MethodPut, "/api/v1/crews/tt4154796", `{"writers":[]}`)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m.crews.AssertExpectations(t)
}

func TestCrewMembers(t *testing.T) {
	t.Run("should add directors", func(t *testing.T) {
		server, m := newMockedServer()
		m.crews.On("AddMembers", anyCtx, "tt4154796", crew.Directors, []string{"nm0751648"}).
			Return(crew.Crew{Tconst: "tt4154796", Directors: []string{"nm0751577", "nm0751648"}}, nil).Once()

		rec := sendJSON(server, http.MethodPost, "/api/v1/crews/tt4154796/directors", `{"nconsts":"nm0751648"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got crew.Crew
		decodeData(t, rec, &got)
		assert.Equal(t, []string{"nm0751577", "nm0751648"}, got.Directors)
	})

	t.Run("should add writers", func(t *testing.T) {
		server, m := newMockedServer()
		m.crews.On("AddMembers", anyCtx, "tt4154796", crew.Writers, []string{"nm1321655", "nm1321656"}).
			Return(crew.Crew{Tconst: "tt4154796"}, nil).Once()

		rec := sendJSON(server, http.MethodPost, "/api/v1/crews/tt4154796/writers", `{"nconsts":["nm1321655","nm1321656"]}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		m.crews.AssertExpectations(t)
	})

	t.Run("should require members", func(t *testing.T) {
		server, m := newMockedServer()

		missing := sendJSON(server, http.MethodPost, "/api/v1/crews/tt4154796/writers", `{}`)
		empty := sendJSON(server, http.MethodPost, "/api/v1/crews/tt4154796/writers", `{"nconsts":[]}`)

		assert.Equal(t, "nconsts: must be provided\n", decodeErrorResponse(t, missing).Message)
		assert.Equal(t, "nconsts: must contain at least 1 item\n", decodeErrorResponse(t, empty).Message)
		m.crews.AssertNotCalled(t, "AddMembers")
	})

	t.Run("should remove a member", func(t *testing.T) {
		server, m := newMockedServer()
		m.crews.On("RemoveMember", anyCtx, "tt4154796", crew.Writers, "nm1321655").
			Return(crew.Crew{Tconst: "tt4154796"}, nil).Once()
		m.crews.On("RemoveMember", anyCtx, "tt4154796", crew.Directors, "nm0000001").
			Return(crew.Crew{}, errs.NotFound("Director", "tconst", "tt4154796", "nconst", "nm0000001")).Once()

		removed := serve(server, http.MethodDelete, "/api/v1/crews/tt4154796/writers/nm1321655", nil)
		missing := serve(server, http.MethodDelete, "/api/v1/crews/tt4154796/directors/nm0000001", nil)

		assert.Equal(t, http.StatusOK, removed.Code)
		require.Equal(t, http.StatusNotFound, missing.Code)
		assert.Equal(t, "Director not found: tconst=tt4154796, nconst=nm0000001", decodeErrorResponse(t, missing).Message)
		m.crews.AssertExpectations(t)
	})
}

func TestDeleteCrew(t *testing.T) {
	server, m := newMockedServer()
	m.crews.On("Delete", anyCtx, "tt4154796").Return(nil).Once()

	rec := serve(server, http.MethodDelete, "/api/v1/crews/tt4154796", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	m.crews.AssertExpectations(t)
}
