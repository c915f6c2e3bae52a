//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"atrium/config"
	"atrium/infras/jwt"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/infras/redis"
	authService "atrium/internal/domains/auth/service"
	reservationRepository "atrium/internal/domains/reservation/repository"
	reservationService "atrium/internal/domains/reservation/service"
	roomRepository "atrium/internal/domains/room/repository"
	roomService "atrium/internal/domains/room/service"
	userRepository "atrium/internal/domains/user/repository"
	userService "atrium/internal/domains/user/service"
	authHandler "atrium/internal/handlers/auth"
	reservationHandler "atrium/internal/handlers/reservation"
	roomHandler "atrium/internal/handlers/room"
	userHandler "atrium/internal/handlers/user"
	"atrium/permissions"
	"atrium/shared/cache"
	"atrium/transport/http"
	"atrium/transport/http/middleware"
	"atrium/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	roomDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
