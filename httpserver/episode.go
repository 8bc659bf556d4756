package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterEpisodeRoutes(g *echo.Group) {
	g.GET("", s.listEpisodes)
	g.POST("", s.createEpisode)
	g.GET("/:tconst", s.getEpisode)
	g.PUT("/:tconst", s.updateEpisode)
	g.DELETE("/:tconst", s.deleteEpisode)
}

// listEpisodes godoc
// @Summary List episodes
// @Tags episodes
// @Produce json
// @Param parentTconst query string false "series id"
// @Param season query int false "season number"
// @Param includeTitles query bool false "attach episode titles"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/episodes [get]
func (s *Server) listEpisodes(c echo.Context) error {
	var (
		q EpisodeQuery
		p PageQuery
	)
	if err := s.bindQuery(c, &q, &p); err != nil {
		return err
	}
	page, err := s.EpisodeService.List(c.Request().Context(), q.Filter(), p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// getEpisode godoc
// @Summary Get an episode
// @Tags episodes
// @Produce json
// @Param tconst path string true "episode id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/episodes/{tconst} [get]
func (s *Server) getEpisode(c echo.Context) error {
	e, err := s.EpisodeService.Get(c.Request().Context(), c.Param("tconst"))
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, e)
}

// createEpisode godoc
// @Summary Create an episode of a series
// @Tags episodes
// @Accept json
// @Produce json
// @Param body body CreateEpisodeRequest true "episode"
// @Success 201 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/episodes [post]
func (s *Server) createEpisode(c echo.Context) error {
	var req CreateEpisodeRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	e, err := s.EpisodeService.Create(c.Request().Context(), req.ToEpisode())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, e)
}

// updateEpisode godoc
// @Summary Update an episode
// @Tags episodes
// @Accept json
// @Produce json
// @Param tconst path string true "episode id"
// @Param body body UpdateEpisodeRequest true "fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/episodes/{tconst} [put]
func (s *Server) updateEpisode(c echo.Context) error {
	var req UpdateEpisodeRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	e, err := s.EpisodeService.Update(c.Request().Context(), c.Param("tconst"), req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, e)
}

// deleteEpisode godoc
// @Summary Delete an episode
// @Tags episodes
// @Param tconst path string true "episode id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/episodes/{tconst} [delete]
func (s *Server) deleteEpisode(c echo.Context) error {
	if err := s.EpisodeService.Delete(c.Request().Context(), c.Param("tconst")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
