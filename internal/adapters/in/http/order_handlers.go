package http

import (
	"errors"
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	query, err := queries.NewGetOrdersForActorQuery(actorFrom(c))
	if err != nil {
		return err
	}

	orders, err := s.handlers.GetOrdersForActor.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, newOrderSummaryResponse(o))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	budget, err := optionalMoney(req.InitialBudget)
	if err != nil {
		return err
	}
	developerID, err := optionalID(req.DeveloperID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(actorFrom(c), req.CustomerInfo, req.Requirements, budget, developerID)
	if err != nil {
		return err
	}

	id, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/orders/"+id.String())
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Int64()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := bindIDParam(c, "orderId")
	if err != nil {
		return err
	}

	detail, err := s.loadOrder(c, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderDetailResponse(detail))
}

// UpdateOrderDetails handles PATCH /api/v1/orders/{orderId}.
func (s *Server) UpdateOrderDetails(c echo.Context) error {
	orderID, err := bindIDParam(c, "orderId")
	if err != nil {
		return err
	}

	var req UpdateOrderDetailsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	price, err := optionalMoney(req.FinalPrice)
	if err != nil {
		return err
	}

	change := commands.KeepDeveloper
	var developerID kernel.ID
	switch {
	case req.DeveloperID != nil && req.UnassignDeveloper:
		return errs.NewValueIsInvalidErrorWithCause(
			"developerId",
			errors.New("cannot assign and unassign a developer at once"),
		)
	case req.DeveloperID != nil:
		change = commands.AssignDeveloper
		if developerID, err = kernel.NewID(*req.DeveloperID); err != nil {
			return err
		}
	case req.UnassignDeveloper:
		change = commands.UnassignDeveloper
	}

	cmd, err := commands.NewUpdateOrderDetailsCommand(actorFrom(c), orderID, price, change, developerID)
	if err != nil {
		return err
	}

	if err := s.handlers.UpdateOrderDetails.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions. The body names
// an action, or a target status that is resolved against the current status.
func (s *Server) TransitionOrder(c echo.Context) error {
	orderID, err := bindIDParam(c, "orderId")
	if err != nil {
		return err
	}

	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	action, err := s.resolveAction(c, orderID, req)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(actorFrom(c), orderID, action)
	if err != nil {
		return err
	}

	result, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	s.metrics.ObserveTransition(action, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TransitionResponse{From: result.From.String(), To: result.To.String()})
}

func (s *Server) resolveAction(c echo.Context, orderID kernel.ID, req TransitionRequest) (order.Action, error) {
	switch {
	case req.Action != nil && req.Status != nil:
		return order.UnknownAction, errs.NewValueIsInvalidErrorWithCause(
			"transition",
			errors.New("give either an action or a status"),
		)
	case req.Action != nil:
		return order.ParseAction(*req.Action)
	case req.Status != nil:
		target, err := order.ParseStatus(*req.Status)
		if err != nil {
			return order.UnknownAction, err
		}
		current, err := s.loadOrder(c, orderID)
		if err != nil {
			return order.UnknownAction, err
		}
		return order.ActionFor(current.Status, target)
	}
	return order.UnknownAction, errs.NewValueIsRequiredError("action")
}

// SetSpecialCommission handles PUT /api/v1/orders/{orderId}/special-commission.
func (s *Server) SetSpecialCommission(c echo.Context) error {
	orderID, err := bindIDParam(c, "orderId")
	if err != nil {
		return err
	}

	var req SpecialCommissionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	csRate, err := optionalRate(req.CSRate)
	if err != nil {
		return err
	}
	techRate, err := optionalRate(req.TechRate)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetSpecialCommissionCommand(actorFrom(c), orderID, csRate, techRate)
	if err != nil {
		return err
	}

	if err := s.handlers.SetSpecialCommission.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddWorkLog handles POST /api/v1/orders/{orderId}/work-logs.
func (s *Server) AddWorkLog(c echo.Context) error {
	orderID, err := bindIDParam(c, "orderId")
	if err != nil {
		return err
	}

	var req WorkLogRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewAddWorkLogCommand(actorFrom(c), orderID, req.Content)
	if err != nil {
		return err
	}

	if err := s.handlers.AddWorkLog.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

func (s *Server) loadOrder(c echo.Context, orderID kernel.ID) (queries.GetOrderQueryResponse, error) {
	query, err := queries.NewGetOrderQuery(actorFrom(c), orderID)
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	return s.handlers.GetOrder.Handle(c.Request().Context(), query)
}
