package main

import (
	"context"
	"log/slog"
	"os"

	"fergetid/config"
	"fergetid/internal/delivery"
	"fergetid/internal/delivery/http"
	"fergetid/internal/delivery/http/router/handler"
	"fergetid/internal/domain/service"
	"fergetid/internal/format"
	logs "fergetid/internal/infra/log"
	"fergetid/internal/infra/notification"
	"fergetid/internal/infra/routing/googleroutes"
	"fergetid/internal/infra/routing/here"
	"fergetid/internal/infra/schedule/entur"
	"fergetid/internal/infra/terminals"
	"fergetid/internal/usecase"
	"fergetid/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		terminals.NewRegistry,
		notification.NewService,
		newScheduleSource,
		newRouteProviders,
	)
}

// newScheduleSource creates the Entur departure source with dependency injection
func newScheduleSource(cfg *config.Config) service.ScheduleSource {
	return entur.NewClient(cfg.Entur)
}

// newRouteProviders builds the provider chain in fallback order: HERE first,
// then Google Routes. Unconfigured providers are skipped at query time.
func newRouteProviders(cfg *config.Config) []service.RouteProvider {
	return []service.RouteProvider{
		here.NewAdapter(cfg.Here),
		googleroutes.NewAdapter(cfg.Google),
	}
}

// newRouteResolver creates the caching resolver with dependency injection
func newRouteResolver(cfg *config.Config, logger *slog.Logger, providers []service.RouteProvider) usecase.RouteResolver {
	return impl.NewRouteResolver(cfg.Resolver, logger, providers)
}

// newFormatter creates the verdict formatter from the configured locale
func newFormatter(cfg *config.Config) usecase.VerdictFormatter {
	return format.New(cfg.Locale, format.PlainHighlighter{})
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			newRouteResolver,
			newFormatter,
			impl.NewFerryCatchService,
			impl.NewPlanService,
			impl.NewReminderService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewTravelTimeHandler,
			handler.NewTerminalHandler,
			handler.NewReminderHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
