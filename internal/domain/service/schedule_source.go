package service

import (
	"context"
	"time"

	"fergetid/internal/domain/entity"
)

// ScheduleSource yields the aimed departures of a ferry quay.
type ScheduleSource interface {
	// Departures returns up to limit scheduled departures from the quay,
	// starting at the given time.
	Departures(ctx context.Context, quayID string, start time.Time, limit int) (entity.Schedule, error)
}
