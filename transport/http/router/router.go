package router

import (
	"kost/internal/handlers/auth"
	"kost/internal/handlers/booking"
	"kost/internal/handlers/payment"
	"kost/internal/handlers/room"
	"kost/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	Payment payment.Handler
	Tenant  user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)

		routerGroup.Route("/admin", func(admin chi.Router) {
			r.DomainHandlers.Room.AdminRouter(admin)
			r.DomainHandlers.Booking.AdminRouter(admin)
			r.DomainHandlers.Tenant.AdminRouter(admin)
		})
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
