package http

import (
	"net/http"

	"orderdesk/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetStatusDistribution handles GET /api/v1/dashboard/status-distribution.
func (s *Server) GetStatusDistribution(c echo.Context) error {
	response, err := s.handlers.GetStatusDistribution.Handle(
		c.Request().Context(),
		queries.NewGetStatusDistributionQuery(),
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newStatusDistributionResponse(response))
}

// GetPersonalStats handles GET /api/v1/dashboard/me.
func (s *Server) GetPersonalStats(c echo.Context) error {
	query, err := queries.NewGetPersonalStatsQuery(actorFrom(c), s.clock.Now())
	if err != nil {
		return err
	}

	stats, err := s.handlers.GetPersonalStats.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PersonalStatsResponse{
		Role:            stats.Role.String(),
		MonthlyOrders:   stats.MonthlyOrders,
		TotalCommission: stats.TotalCommission.String(),
	})
}
