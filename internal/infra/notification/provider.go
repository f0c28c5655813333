package notification

import (
	"context"
	"log/slog"

	"fergetid/config"
	"fergetid/internal/domain/service"

	"go.uber.org/fx"
)

// Params defines the dependencies for the notification provider.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewService returns the Firebase service when credentials are configured,
// otherwise a logging no-op so reminder requests degrade instead of failing
// at startup.
func NewService(params Params) (service.NotificationService, error) {
	firebaseCfg := params.Config.Firebase
	if firebaseCfg == nil || firebaseCfg.CredentialsPath == "" {
		params.Logger.Warn("firebase credentials not configured, push notifications disabled")

		return &noopService{logger: params.Logger}, nil
	}

	return NewFirebaseService(context.Background(), firebaseCfg.CredentialsPath)
}

// noopService drops notifications and records that it did.
type noopService struct {
	logger *slog.Logger
}

func (s *noopService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	s.logger.Info("notification dropped, no provider configured",
		slog.String("title", title),
	)

	return nil
}
