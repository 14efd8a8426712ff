package router

import (
	"identity-api/internal/application"
	"identity-api/internal/container"
	pginfra "identity-api/internal/infrastructure/postgres"
	handlers "identity-api/internal/interface/http"
	"identity-api/internal/router/modules"
	"identity-api/pkg/helpers"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	repo := pginfra.NewUserRepository(container.GetPGPool())
	service := application.NewService(
		repo,
		helpers.NewBcryptHasher(0),
		container.GetJWT(),
		logger,
	)

	authHandler := handlers.NewAuthHandler(service, container.GetRabbitPub(), logger)
	userHandler := handlers.NewUserHandler(
		service,
		container.GetRedis(),
		cfg.ProfileCacheTTL,
		container.GetRabbitPub(),
		logger,
	)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
}
