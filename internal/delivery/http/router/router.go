// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fergetid/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	TravelTimeHandler *handler.TravelTimeHandler
	TerminalHandler   *handler.TerminalHandler
	ReminderHandler   *handler.ReminderHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	travelTimeHandler *handler.TravelTimeHandler
	terminalHandler   *handler.TerminalHandler
	reminderHandler   *handler.ReminderHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		travelTimeHandler: params.TravelTimeHandler,
		terminalHandler:   params.TerminalHandler,
		reminderHandler:   params.ReminderHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiGroup := e.Group("/api/v1")
	{
		apiGroup.GET("/terminals", r.terminalHandler.ListTerminals)
		apiGroup.GET("/traveltime", r.travelTimeHandler.GetTravelTime)
		apiGroup.POST("/reminder", r.reminderHandler.SendReminder)
	}
}
