package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviedb/crew"
)

func (s *Server) RegisterCrewRoutes(g *echo.Group) {
	g.GET("", s.listCrews)
	g.POST("", s.createCrew)
	g.GET("/:tconst", s.getCrew)
	g.PUT("/:tconst", s.updateCrew)
	g.DELETE("/:tconst", s.deleteCrew)
	for _, role := range []crew.Role{crew.Directors, crew.Writers} {
		g.POST("/:tconst/"+string(role), s.addCrewMembers(role))
		g.DELETE("/:tconst/"+string(role)+"/:nconst", s.removeCrewMember(role))
	}
}

// listCrews godoc
// @Summary List crews
// @Tags crews
// @Produce json
// @Param director query string false "director nconst"
// @Param writer query string false "writer nconst"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/crews [get]
func (s *Server) listCrews(c echo.Context) error {
	var (
		q CrewQuery
		p PageQuery
	)
	if err := s.bindQuery(c, &q, &p); err != nil {
		return err
	}
	page, err := s.CrewService.List(c.Request().Context(), q.Filter(), p.Page)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// getCrew godoc
// @Summary Get a crew
// @Tags crews
// @Produce json
// @Param tconst path string true "title id"
// @Param includeNames query bool false "attach names"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/crews/{tconst} [get]
func (s *Server) getCrew(c echo.Context) error {
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

// createCrew godoc
// @Summary Create a crew
// @Tags crews
// @Accept json
// @Produce json
// @Param body body CreateCrewRequest true "crew"
// @Success 201 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/crews [post]
func (s *Server) createCrew(c echo.Context) error {
	var req CreateCrewRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	cr, err := s.CrewService.Create(c.Request().Context(), req.ToCrew())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, cr)
}

// updateCrew godoc
// @Summary Replace directors or writers
// @Tags crews
// @Accept json
// @Produce json
// @Param tconst path string true "title id"
// @Param body body UpdateCrewRequest true "lists to replace"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/crews/{tconst} [put]
func (s *Server) updateCrew(c echo.Context) error {
	var req UpdateCrewRequest
	if err := s.bindBody(c, &req); err != nil {
		return err
	}
	cr, err := s.CrewService.Update(c.Request().Context(), c.Param("tconst"), req.ToPatch())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, cr)
}

// deleteCrew godoc
// @Summary Delete a crew
// @Tags crews
// @Param tconst path string true "title id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/crews/{tconst} [delete]
func (s *Server) deleteCrew(c echo.Context) error {
	if err := s.CrewService.Delete(c.Request().Context(), c.Param("tconst")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// addCrewMembers godoc
// @Summary Add directors or writers
// @Tags crews
// @Accept json
// @Produce json
// @Param tconst path string true "title id"
// @Param body body CrewMembersRequest true "members"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/crews/{tconst}/directors [post]
// @Router /api/v1/crews/{tconst}/writers [post]
func (s *Server) addCrewMembers(role crew.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req CrewMembersRequest
		if err := s.bindBody(c, &req); err != nil {
			return err
		}
		cr, err := s.CrewService.AddMembers(c.Request().Context(), c.Param("tconst"), role, req.Nconsts)
		if err != nil {
			return err
		}
		return writeSuccess(c, http.StatusOK, cr)
	}
}

// removeCrewMember godoc
// @Summary Remove a director or writer
// @Tags crews
// @Produce json
// @Param tconst path string true "title id"
// @Param nconst path string true "name id"
// @Success 200 {object} APIResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/crews/{tconst}/directors/{nconst} [delete]
// @Router /api/v1/crews/{tconst}/writers/{nconst} [delete]
func (s *Server) removeCrewMember(role crew.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		cr, err := s.CrewService.RemoveMember(c.Request().Context(), c.Param("tconst"), role, c.Param("nconst"))
		if err != nil {
			return err
		}
		return writeSuccess(c, http.StatusOK, cr)
	}
}
