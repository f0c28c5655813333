package handler

import (
	"net/http"

	"fergetid/internal/delivery/http/response"
	"fergetid/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TerminalHandlerParams holds dependencies for TerminalHandler, injected by Fx.
type TerminalHandlerParams struct {
	fx.In

	Terminals service.TerminalRegistry
}

// TerminalHandler lists the known ferry terminals.
type TerminalHandler struct {
	terminals service.TerminalRegistry
}

// NewTerminalHandler is the constructor for TerminalHandler
func NewTerminalHandler(params TerminalHandlerParams) *TerminalHandler {
	return &TerminalHandler{terminals: params.Terminals}
}

// ListTerminals handles retrieving all registered terminals
func (h *TerminalHandler) ListTerminals(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.terminals.All(), "Terminals retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
