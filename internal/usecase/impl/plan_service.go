package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"
	"fergetid/internal/usecase"

	"github.com/pkg/errors"
)

// scheduleLookahead caps how many upcoming departures one query fetches.
const scheduleLookahead = 10

var (
	// ErrUnknownTerminal is returned when the requested quay ID is not in
	// the registry.
	ErrUnknownTerminal = errors.New("unknown terminal")

	// ErrNoDestination is returned when a query names neither a terminal
	// nor a destination coordinate.
	ErrNoDestination = errors.New("no terminal or destination given")

	// ErrInvalidCoordinate is returned for coordinates outside Earth bounds.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// planService answers one full travel-time query: resolve the terminal,
// estimate the drive, fetch the schedule, decide and format.
type planService struct {
	resolver  usecase.RouteResolver
	engine    usecase.FerryCatchUsecase
	schedules service.ScheduleSource
	terminals service.TerminalRegistry
	formatter usecase.VerdictFormatter
	logger    *slog.Logger
}

func NewPlanService(
	resolver usecase.RouteResolver,
	engine usecase.FerryCatchUsecase,
	schedules service.ScheduleSource,
	terminals service.TerminalRegistry,
	formatter usecase.VerdictFormatter,
	logger *slog.Logger,
) usecase.PlanUsecase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &planService{
		resolver:  resolver,
		engine:    engine,
		schedules: schedules,
		terminals: terminals,
		formatter: formatter,
		logger:    logger,
	}
}

func (s *planService) Plan(ctx context.Context, input usecase.PlanInput, now time.Time) (*usecase.Plan, error) {
	if !input.Start.Valid() {
		return nil, errors.Wrap(ErrInvalidCoordinate, "start")
	}
	if input.End != nil && !input.End.Valid() {
		return nil, errors.Wrap(ErrInvalidCoordinate, "end")
	}

	terminal, err := s.terminal(input)
	if err != nil {
		return nil, err
	}

	route := s.resolver.Resolve(ctx, entity.RouteRequest{
		Start:    input.Start,
		End:      terminal.Location,
		RoadOnly: input.RoadOnly,
	})

	schedule, err := s.schedules.Departures(ctx, terminal.ID, now, scheduleLookahead)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch departures for %s", terminal.ID)
	}

	// Minutes until the first departure still ahead of us; zero when the
	// day's schedule is exhausted, which the decision treats as missed.
	timeToDeparture := 0
	if next, ok := schedule.Next(now); ok {
		timeToDeparture = int(math.Round(next.Aimed.Sub(now).Minutes()))
	}

	verdict := s.engine.Decide(route, timeToDeparture, schedule, now)

	s.logger.Debug("travel plan computed",
		slog.String("terminal", terminal.ID),
		slog.String("category", string(verdict.Category)),
		slog.String("routeSource", string(route.Source)),
	)

	return &usecase.Plan{
		Terminal: terminal,
		Route:    route,
		Verdict:  verdict,
		Message:  s.formatter.Format(verdict),
	}, nil
}

// terminal resolves the destination quay, by ID when given and otherwise by
// proximity to the destination coordinate.
func (s *planService) terminal(input usecase.PlanInput) (entity.Terminal, error) {
	if input.TerminalID != "" {
		terminal, ok := s.terminals.Get(input.TerminalID)
		if !ok {
			return entity.Terminal{}, errors.Wrap(ErrUnknownTerminal, input.TerminalID)
		}

		return terminal, nil
	}

	if input.End == nil {
		return entity.Terminal{}, ErrNoDestination
	}

	terminal, ok := s.terminals.Nearest(*input.End)
	if !ok {
		return entity.Terminal{}, ErrUnknownTerminal
	}

	return terminal, nil
}
