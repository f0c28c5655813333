package usecase

import (
	"context"
	"time"

	"fergetid/internal/domain/entity"
)

// RouteResolver answers driving-time queries. It never fails: when every
// provider is down or unconfigured it falls back to a geodesic estimate,
// and the result's Source field carries the provenance so callers can
// detect degraded quality.
type RouteResolver interface {
	Resolve(ctx context.Context, req entity.RouteRequest) *entity.RouteResult
}

// FerryCatchUsecase classifies whether a traveller catches a departure.
type FerryCatchUsecase interface {
	// Decide combines a driving-time estimate with the departure schedule.
	// timeToDeparture is whole minutes until the departure being aimed
	// for. The function is pure; identical inputs yield identical verdicts.
	Decide(route *entity.RouteResult, timeToDeparture int, schedule entity.Schedule, now time.Time) entity.Verdict
}

// PlanInput describes a full travel-time query against a ferry terminal.
type PlanInput struct {
	Start entity.Coordinate

	// TerminalID selects the destination quay; when empty, End must be
	// set and the nearest registered terminal is used.
	TerminalID string
	End        *entity.Coordinate

	RoadOnly bool
}

// Plan is the structured answer handed to the presentation layer.
type Plan struct {
	Terminal entity.Terminal     `json:"terminal"`
	Route    *entity.RouteResult `json:"route"`
	Verdict  entity.Verdict      `json:"verdict"`

	// Message is the formatted human-readable verdict.
	Message string `json:"message"`
}

// PlanUsecase orchestrates resolve, schedule lookup, decision and
// formatting for one query.
type PlanUsecase interface {
	Plan(ctx context.Context, input PlanInput, now time.Time) (*Plan, error)
}

// ReminderUsecase computes a plan and pushes the verdict to a device.
type ReminderUsecase interface {
	SendReminder(ctx context.Context, token string, input PlanInput, now time.Time) (*Plan, error)
}
