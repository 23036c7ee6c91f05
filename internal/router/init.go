package router

import (
	"github.com/oksasatya/go-session-auth/internal/application"
	"github.com/oksasatya/go-session-auth/internal/container"
	pginfra "github.com/oksasatya/go-session-auth/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-session-auth/internal/interface/http"
	"github.com/oksasatya/go-session-auth/internal/router/modules"
)

// InitModules builds the handlers from the container singletons and
// registers every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	repo := pginfra.NewUserRepository(container.GetPGPool())
	svc := application.NewService(
		repo,
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		container.GetConfirm(),
		container.GetES(),
		cfg.ESUsersIndex,
		cfg,
	)

	authHandler := handlers.NewAuthHandler(svc, container.GetSessions(), container.GetCookies(), logger)
	confirmHandler := handlers.NewConfirmHandler(svc, logger)
	twitterHandler := handlers.NewTwitterHandler(
		container.GetTwitter(),
		svc,
		container.GetSessions(),
		container.GetCookies(),
		logger,
		cfg.FrontendHost,
	)
	userHandler := handlers.NewUserHandler(svc, logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler))
	r.AddRoot(modules.NewOAuthModule(confirmHandler, twitterHandler))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
