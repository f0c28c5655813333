package handler

import (
	"log/slog"
	"net/http"
	"time"

	"fergetid/internal/delivery/http/response"
	"fergetid/internal/domain/entity"
	"fergetid/internal/usecase"
	"fergetid/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TravelTimeHandlerParams holds dependencies for TravelTimeHandler, injected by Fx.
type TravelTimeHandlerParams struct {
	fx.In

	PlanUC usecase.PlanUsecase
	Logger *slog.Logger
}

// TravelTimeHandler answers travel-time queries against a ferry terminal.
type TravelTimeHandler struct {
	planUC usecase.PlanUsecase
	logger *slog.Logger
}

// NewTravelTimeHandler is the constructor for TravelTimeHandler
func NewTravelTimeHandler(params TravelTimeHandlerParams) *TravelTimeHandler {
	return &TravelTimeHandler{
		planUC: params.PlanUC,
		logger: params.Logger,
	}
}

// TravelTimeRequest represents the query parameters of a travel-time lookup
type TravelTimeRequest struct {
	FromLat  float64  `query:"fromLat" validate:"required,min=-90,max=90"`
	FromLng  float64  `query:"fromLng" validate:"required,min=-180,max=180"`
	Terminal string   `query:"terminal"`
	ToLat    *float64 `query:"toLat" validate:"omitempty,min=-90,max=90"`
	ToLng    *float64 `query:"toLng" validate:"omitempty,min=-180,max=180"`
	RoadOnly bool     `query:"roadOnly"`
}

func (r *TravelTimeRequest) planInput() usecase.PlanInput {
	input := usecase.PlanInput{
		Start:      entity.Coordinate{Lat: r.FromLat, Lng: r.FromLng},
		TerminalID: r.Terminal,
		RoadOnly:   r.RoadOnly,
	}
	if r.ToLat != nil && r.ToLng != nil {
		input.End = &entity.Coordinate{Lat: *r.ToLat, Lng: *r.ToLng}
	}

	return input
}

// GetTravelTime handles a travel-time query
func (h *TravelTimeHandler) GetTravelTime(c echo.Context) error {
	var req TravelTimeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid travel time query")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	plan, err := h.planUC.Plan(c.Request().Context(), req.planInput(), time.Now())
	if err != nil {
		return h.handlePlanError(c, err)
	}

	return response.Success(c, http.StatusOK, plan, "Travel time computed successfully")
}

// handlePlanError maps usecase failures onto API responses
func (h *TravelTimeHandler) handlePlanError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, impl.ErrNoDestination):
		return response.BadRequest(c, "MISSING_DESTINATION", "Either terminal or toLat/toLng is required")
	case errors.Is(err, impl.ErrInvalidCoordinate):
		return response.BadRequest(c, "INVALID_COORDINATE", "Coordinates are outside Earth bounds")
	case errors.Is(err, impl.ErrUnknownTerminal):
		return response.NotFound(c, "TERMINAL_NOT_FOUND", "Unknown ferry terminal")
	}

	h.logger.Error("travel time query failed", slog.String("error", err.Error()))

	return response.BadGateway(c, "SCHEDULE_UNAVAILABLE", "Could not fetch the departure schedule")
}
