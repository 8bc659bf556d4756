package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviedb/episode"
	"moviedb/principal"
	"moviedb/title"
)

func (s *Server) RegisterTitleRoutes(g *echo.Group) {
	g.GET("", s.listTitles)
	g.GET("/search", s.searchTitles)
	g.POST("", s.createTitle)
	g.GET("/:tconst", s.getTitle)
	g.PUT("/:tconst", s.updateTitle)
	g.DELETE("/:tconst", s.deleteTitle)
	g.GET("/:tconst/akas", s.listTitleAkas)
	g.GET("/:tconst/episodes", s.listTitleSeasons)
	g.GET("/:tconst/cast", s.listTitleCast)
	g.GET("/:tconst/crews", s.getTitleCrew)
}

// listTitles godoc
// @Summary List titles
// @Tags basics
// @Produce json
// @Param titleType query []string false "title types" collectionFormat(multi)
// @Param genre query []string false "genres" collectionFormat(multi)
// @Param isAdult query bool false "adult titles"
// @Param since query int false "minimum start year"
// @Param until query int false "maximum start year"
// @Param minRuntime query int false "minimum runtime in minutes"
// @Param maxRuntime query int false "maximum runtime in minutes"
// @Param sort query string false "sort keys, prefix with - for descending"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/basics [get]
func (s *Server) listTitles(c echo.Context) error {
	var (
		q TitleQuery
		p PageQuery
	)
	if err := s.bindQuery(c, &q, &p); err != nil {
		return err
	}
	page, err := s.TitleService.List(c.Request().Context(), q.Filter(), p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// searchTitles godoc
// @Summary Full text search on titles
// @Tags basics
// @Produce json
// @Param q query string true "search text"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/basics/search [get]
func (s *Server) searchTitles(c echo.Context) error {
	var (
		sq SearchQuery
		q  TitleQuery
		p  PageQuery
	)
	if err := s.bindQuery(c, &sq, &q, &p); err != nil {
		return err
	}
	f := title.SearchFilter{Query: sq.Q, Filter: q.Filter()}
	page, err := s.TitleService.Search(c.Request().Context(), f, p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// getTitle godoc
// @Summary Get a title
// @Tags basics
// @Produce json
// @Param tconst path string true "title id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/basics/{tconst} [get]
func (s *Server) getTitle(c echo.Context) error {
	t, err := s.TitleService.Get(c.Request().Context(), c.Param("tconst"))
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, t)
}

// createTitle godoc
// @Summary Create a title
// @Tags basics
// @Accept json
// @Produce json
// @Param body body CreateTitleRequest true "title"
// @Success 201 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/basics [post]
func (s *Server) createTitle(c echo.Context) error {
	var req CreateTitleRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	t, err := s.TitleService.Create(c.Request().Context(), req.ToTitle())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, t)
}

// updateTitle godoc
// @Summary Update a title
// @Tags basics
// @Accept json
// @Produce json
// @Param tconst path string true "title id"
// @Param body body UpdateTitleRequest true "fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/basics/{tconst} [put]
func (s *Server) updateTitle(c echo.Context) error {
	var req UpdateTitleRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	t, err := s.TitleService.Update(c.Request().Context(), c.Param("tconst"), req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, t)
}

// deleteTitle godoc
// @Summary Delete a title
// @Tags basics
// @Param tconst path string true "title id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/basics/{tconst} [delete]
func (s *Server) deleteTitle(c echo.Context) error {
	if err := s.TitleService.Delete(c.Request().Context(), c.Param("tconst")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listTitleAkas godoc
// @Summary Alternate titles of a title, by ordering
// @Tags basics
// @Produce json
// @Param tconst path string true "title id"
// @Param region query string false "region"
// @Param language query string false "language"
// @Param isOriginalTitle query bool false "original title only"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/basics/{tconst}/akas [get]
func (s *Server) listTitleAkas(c echo.Context) error {
	var (
		q TitleAkaQuery
		p PageQuery
	)
	if err := s.bindQuery(c, &q, &p); err != nil {
		return err
	}
	page, err := s.AkaService.ListForTitle(c.Request().Context(), q.Filter(c.Param("tconst")), p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// listTitleSeasons godoc
// @Summary Episodes of a series grouped by season
// @Tags basics
// @Produce json
// @Param tconst path string true "series id"
// @Param season query int false "season number"
// @Param includeTitles query bool false "attach episode titles"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/basics/{tconst}/episodes [get]
func (s *Server) listTitleSeasons(c echo.Context) error {
	var q EpisodeQuery
	if err := s.bindQuery(c, &q); err != nil {
		return err
	}
	f := episode.Filter{ParentTconst: c.Param("tconst"), Season: q.Season, IncludeTitles: q.IncludeTitles}
	seasons, err := s.EpisodeService.Seasons(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, seasons)
}

// listTitleCast godoc
// @Summary Merged principals of a title
// @Tags basics
// @Produce json
// @Param tconst path string true "title id"
// @Param category query []string false "categories" collectionFormat(multi)
// @Param includeNames query bool false "attach names"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/basics/{tconst}/cast [get]
func (s *Server) listTitleCast(c echo.Context) error {
	var (
		q PrincipalQuery
		p PageQuery
	)
	if err := s.bindQuery(c, &q, &p); err != nil {
		return err
	}
	f := principal.Filter{Tconst: c.Param("tconst"), Categories: q.Categories, IncludeNames: q.IncludeNames}
	page, err := s.PrincipalService.Cast(c.Request().Context(), f, p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// getTitleCrew godoc
// @Summary Crew of a title
// @Tags basics
// @Produce json
// @Param tconst path string true "title id"
// @Param includeNames query bool false "attach names"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/basics/{tconst}/crews [get]
func (s *Server) getTitleCrew(c echo.Context) error {
	inc := IncludeQuery{field: "includeNames"}
	if err := s.bindQuery(c, &inc); err != nil {
		return err
	}
	cr, err := s.CrewService.Get(c.Request().Context(), c.Param("tconst"), inc.Include)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, cr)
}
