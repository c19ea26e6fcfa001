//go:build wireinject
// +build wireinject

package di

import (
	"kost/config"
	"kost/infras/jwt"
	"kost/infras/kafka"
	"kost/infras/midtrans"
	"kost/infras/otel"
	"kost/infras/postgres"
	"kost/infras/redis"
	"kost/infras/s3"
	"kost/permissions"
	"kost/shared/cache"
	"kost/transport/http"
	"kost/transport/http/middleware"
	"kost/transport/http/router"

	"github.com/google/wire"

	authService "kost/internal/domains/auth/service"
	bookingRepository "kost/internal/domains/booking/repository"
	bookingService "kost/internal/domains/booking/service"
	paymentRepository "kost/internal/domains/payment/repository"
	paymentService "kost/internal/domains/payment/service"
	reconRepository "kost/internal/domains/reconciliation/repository"
	reconService "kost/internal/domains/reconciliation/service"
	roomRepository "kost/internal/domains/room/repository"
	roomService "kost/internal/domains/room/service"
	userRepository "kost/internal/domains/user/repository"
	userService "kost/internal/domains/user/service"
	authHandler "kost/internal/handlers/auth"
	bookingHandler "kost/internal/handlers/booking"
	paymentHandler "kost/internal/handlers/payment"
	roomHandler "kost/internal/handlers/room"
	userHandler "kost/internal/handlers/user"
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
	s3.New,
	midtrans.New,
	NewScheduler,
	wire.Bind(new(paymentService.Database), new(*postgres.Connection)),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
	wire.Bind(new(roomService.AvailabilitySyncer), new(reconService.Reconciler)),
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	paymentRepository.New,
	paymentService.New,
	reconRepository.New,
	reconService.New,
)

var domains = wire.NewSet(
	userDomain,
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	userHandler.New,
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
