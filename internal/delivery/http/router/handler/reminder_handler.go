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

// ReminderHandlerParams holds dependencies for ReminderHandler, injected by Fx.
type ReminderHandlerParams struct {
	fx.In

	ReminderUC usecase.ReminderUsecase
	Logger     *slog.Logger
}

// ReminderHandler sends leave-reminder push notifications.
type ReminderHandler struct {
	reminderUC usecase.ReminderUsecase
	logger     *slog.Logger
}

// NewReminderHandler is the constructor for ReminderHandler
func NewReminderHandler(params ReminderHandlerParams) *ReminderHandler {
	return &ReminderHandler{
		reminderUC: params.ReminderUC,
		logger:     params.Logger,
	}
}

// ReminderRequest represents the request body for sending a reminder
type ReminderRequest struct {
	Token    string   `json:"token" validate:"required"`
	FromLat  float64  `json:"fromLat" validate:"required,min=-90,max=90"`
	FromLng  float64  `json:"fromLng" validate:"required,min=-180,max=180"`
	Terminal string   `json:"terminal"`
	ToLat    *float64 `json:"toLat" validate:"omitempty,min=-90,max=90"`
	ToLng    *float64 `json:"toLng" validate:"omitempty,min=-180,max=180"`
	RoadOnly bool     `json:"roadOnly"`
}

// SendReminder handles computing a plan and pushing it to the device
func (h *ReminderHandler) SendReminder(c echo.Context) error {
	var req ReminderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reminder input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.PlanInput{
		Start:      entity.Coordinate{Lat: req.FromLat, Lng: req.FromLng},
		TerminalID: req.Terminal,
		RoadOnly:   req.RoadOnly,
	}
	if req.ToLat != nil && req.ToLng != nil {
		input.End = &entity.Coordinate{Lat: *req.ToLat, Lng: *req.ToLng}
	}

	plan, err := h.reminderUC.SendReminder(c.Request().Context(), req.Token, input, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, impl.ErrNoDestination):
			return response.BadRequest(c, "MISSING_DESTINATION", "Either terminal or toLat/toLng is required")
		case errors.Is(err, impl.ErrInvalidCoordinate):
			return response.BadRequest(c, "INVALID_COORDINATE", "Coordinates are outside Earth bounds")
		case errors.Is(err, impl.ErrUnknownTerminal):
			return response.NotFound(c, "TERMINAL_NOT_FOUND", "Unknown ferry terminal")
		}

		h.logger.Error("reminder failed", slog.String("error", err.Error()))

		return response.InternalServerError(c, "REMINDER_FAILED", "Could not send the reminder")
	}

	return response.Success(c, http.StatusAccepted, plan, "Reminder sent successfully")
}
