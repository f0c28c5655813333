package impl

import (
	"context"
	"time"

	"fergetid/internal/domain/service"
	"fergetid/internal/usecase"
	"fergetid/internal/util"

	"github.com/pkg/errors"
)

const reminderTitle = "Fergetid"

// reminderService computes a plan and pushes its message to a device.
type reminderService struct {
	plans    usecase.PlanUsecase
	notifier service.NotificationService
}

func NewReminderService(plans usecase.PlanUsecase, notifier service.NotificationService) usecase.ReminderUsecase {
	return &reminderService{
		plans:    plans,
		notifier: notifier,
	}
}

func (s *reminderService) SendReminder(ctx context.Context, token string, input usecase.PlanInput, now time.Time) (*usecase.Plan, error) {
	plan, err := s.plans.Plan(ctx, input, now)
	if err != nil {
		return nil, err
	}

	data := map[string]string{
		"terminal": plan.Terminal.ID,
		"category": string(plan.Verdict.Category),
	}
	if plan.Verdict.SuggestedStart != nil {
		data["suggestedStart"] = util.FormatClock(*plan.Verdict.SuggestedStart)
	}

	if err := s.notifier.SendSingleNotification(ctx, token, reminderTitle, plan.Message, data); err != nil {
		return nil, errors.Wrap(err, "send reminder")
	}

	return plan, nil
}
