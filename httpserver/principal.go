package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPrincipalRoutes(g *echo.Group) {
	g.GET("", s.listPrincipals)
	g.POST("", s.createPrincipal)
	g.GET("/:tconst/:nconst", s.getPrincipal)
	g.PUT("/:tconst/:nconst/:ordering", s.updatePrincipal)
	g.DELETE("/:tconst/:nconst/:ordering", s.deletePrincipal)
}

// listPrincipals godoc
// @Summary List cast members, one per title and name
// @Tags principals
// @Produce json
// @Param tconst query string false "title id"
// @Param nconst query string false "name id"
// @Param category query []string false "categories" collectionFormat(multi)
// @Param includeNames query bool false "attach names"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/principals [get]
func (s *Server) listPrincipals(c echo.Context) error {
	var (
		q PrincipalQuery
		p PageQuery
	)
	if err := s.bindQuery(c, &q, &p); err != nil {
		return err
	}
	page, err := s.PrincipalService.List(c.Request().Context(), q.Filter(), p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// getPrincipal godoc
// @Summary Merged credits of a name on a title
// @Tags principals
// @Produce json
// @Param tconst path string true "title id"
// @Param nconst path string true "name id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/principals/{tconst}/{nconst} [get]
func (s *Server) getPrincipal(c echo.Context) error {
	m, err := s.PrincipalService.Get(c.Request().Context(), c.Param("tconst"), c.Param("nconst"))
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, m)
}

// createPrincipal godoc
// @Summary Add one credit row
// @Tags principals
// @Accept json
// @Produce json
// @Param body body CreatePrincipalRequest true "credit"
// @Success 201 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/principals [post]
func (s *Server) createPrincipal(c echo.Context) error {
	var req CreatePrincipalRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	p, err := s.PrincipalService.Create(c.Request().Context(), req.ToPrincipal())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, p)
}

// updatePrincipal godoc
// @Summary Update one credit row
// @Tags principals
// @Accept json
// @Produce json
// @Param tconst path string true "title id"
// @Param nconst path string true "name id"
// @Param ordering path int true "row ordering"
// @Param body body UpdatePrincipalRequest true "fields to change"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/principals/{tconst}/{nconst}/{ordering} [put]
func (s *Server) updatePrincipal(c echo.Context) error {
	ordering, err := pathInt(c, "ordering")
	if err != nil {
		return err
	}
	var req UpdatePrincipalRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	p, err := s.PrincipalService.Update(c.Request().Context(), c.Param("tconst"), c.Param("nconst"), ordering, req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, p)
}

// deletePrincipal godoc
// @Summary Delete one credit row
// @Tags principals
// @Param tconst path string true "title id"
// @Param nconst path string true "name id"
// @Param ordering path int true "row ordering"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/principals/{tconst}/{nconst}/{ordering} [delete]
func (s *Server) deletePrincipal(c echo.Context) error {
	ordering, err := pathInt(c, "ordering")
	if err != nil {
		return err
	}
	if err := s.PrincipalService.Delete(c.Request().Context(), c.Param("tconst"), c.Param("nconst"), ordering); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
