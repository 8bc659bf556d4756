package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterAkaRoutes(g *echo.Group) {
	g.GET("", s.listAkas)
	g.POST("", s.createAka)
	g.GET("/:titleId/:ordering", s.getAka)
	g.PUT("/:titleId/:ordering", s.updateAka)
	g.DELETE("/:titleId/:ordering", s.deleteAka)
}

// listAkas godoc
// @Summary List alternate titles
// @Tags akas
// @Produce json
// @Param titleId query string false "title id"
// @Param region query string false "region"
// @Param language query string false "language"
// @Param isOriginalTitle query bool false "original titles only"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/akas [get]
func (s *Server) listAkas(c echo.Context) error {
	var (
		q AkaQuery
		p PageQuery
	)
	if err := s.bindQuery(c, &q, &p); err != nil {
		return err
	}
	page, err := s.AkaService.List(c.Request().Context(), q.Filter(), p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// getAka godoc
// @Summary Get an alternate title
// @Tags akas
// @Produce json
// @Param titleId path string true "title id"
// @Param ordering path int true "ordering"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/akas/{titleId}/{ordering} [get]
func (s *Server) getAka(c echo.Context) error {
	ordering, err := pathInt(c, "ordering")
	if err != nil {
		return err
	}
	a, err := s.AkaService.Get(c.Request().Context(), c.Param("titleId"), ordering)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, a)
}

// createAka godoc
// @Summary Create an alternate title, ordering is assigned
// @Tags akas
// @Accept json
// @Produce json
// @Param body body CreateAkaRequest true "aka"
// @Success 201 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/akas [post]
func (s *Server) createAka(c echo.Context) error {
	var req CreateAkaRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	a, err := s.AkaService.Create(c.Request().Context(), req.ToAka())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, a)
}

// updateAka godoc
// @Summary Update an alternate title
// @Tags akas
// @Accept json
// @Produce json
// @Param titleId path string true "title id"
// @Param ordering path int true "ordering"
// @Param body body UpdateAkaRequest true "fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/akas/{titleId}/{ordering} [put]
func (s *Server) updateAka(c echo.Context) error {
	ordering, err := pathInt(c, "ordering")
	if err != nil {
		return err
	}
	var req UpdateAkaRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	a, err := s.AkaService.Update(c.Request().Context(), c.Param("titleId"), ordering, req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, a)
}

// deleteAka godoc
// @Summary Delete an alternate title
// @Tags akas
// @Param titleId path string true "title id"
// @Param ordering path int true "ordering"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/akas/{titleId}/{ordering} [delete]
func (s *Server) deleteAka(c echo.Context) error {
	ordering, err := pathInt(c, "ordering")
	if err != nil {
		return err
	}
	if err := s.AkaService.Delete(c.Request().Context(), c.Param("titleId"), ordering); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
