package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviedb/person"
)

func (s *Server) RegisterPersonRoutes(g *echo.Group) {
	g.GET("", s.listPeople)
	g.GET("/search", s.searchPeople)
	g.POST("", s.createPerson)
	g.GET("/:nconst", s.getPerson)
	g.PUT("/:nconst", s.updatePerson)
	g.DELETE("/:nconst", s.deletePerson)
}

// listPeople godoc
// @Summary List names
// @Tags names
// @Produce json
// @Param profession query []string false "professions" collectionFormat(multi)
// @Param bornSince query int false "minimum birth year"
// @Param bornUntil query int false "maximum birth year"
// @Param alive query bool false "without a death year"
// @Param sort query string false "sort keys, prefix with - for descending"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/names [get]
func (s *Server) listPeople(c echo.Context) error {
	var (
		q PersonQuery
		p PageQuery
	)
	if err := s.bindQuery(c, &q, &p); err != nil {
		return err
	}
	page, err := s.PersonService.List(c.Request().Context(), q.Filter(), p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// searchPeople godoc
// @Summary Full text search on primaryName
// @Tags names
// @Produce json
// @Param q query string true "search text"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/names/search [get]
func (s *Server) searchPeople(c echo.Context) error {
	var (
		sq SearchQuery
		q  PersonQuery
		p  PageQuery
	)
	if err := s.bindQuery(c, &sq, &q, &p); err != nil {
		return err
	}
	f := person.SearchFilter{Query: sq.Q, Filter: q.Filter()}
	page, err := s.PersonService.Search(c.Request().Context(), f, p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// getPerson godoc
// @Summary Get a name
// @Tags names
// @Produce json
// @Param nconst path string true "name id"
// @Param includeTitles query bool false "resolve knownForTitles"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/names/{nconst} [get]
func (s *Server) getPerson(c echo.Context) error {
	inc := IncludeQuery{field: "includeTitles"}
	if err := s.bindQuery(c, &inc); err != nil {
		return err
	}
	p, err := s.PersonService.Get(c.Request().Context(), c.Param("nconst"), inc.Include)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, p)
}

// createPerson godoc
// @Summary Create a name
// @Tags names
// @Accept json
// @Produce json
// @Param body body CreatePersonRequest true "name"
// @Success 201 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/names [post]
func (s *Server) createPerson(c echo.Context) error {
	var req CreatePersonRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	p, err := s.PersonService.Create(c.Request().Context(), req.ToPerson())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, p)
}

// updatePerson godoc
// @Summary Update a name
// @Tags names
// @Accept json
// @Produce json
// @Param nconst path string true "name id"
// @Param body body UpdatePersonRequest true "fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/names/{nconst} [put]
func (s *Server) updatePerson(c echo.Context) error {
	var req UpdatePersonRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	p, err := s.PersonService.Update(c.Request().Context(), c.Param("nconst"), req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, p)
}

// deletePerson godoc
// @Summary Delete a name
// @Tags names
// @Param nconst path string true "name id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/names/{nconst} [delete]
func (s *Server) deletePerson(c echo.Context) error {
	if err := s.PersonService.Delete(c.Request().Context(), c.Param("nconst")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
