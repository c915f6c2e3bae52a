package router

import (
	"github.com/go-chi/chi/v5"

	"atrium/internal/handlers/auth"
	"atrium/internal/handlers/reservation"
	"atrium/internal/handlers/room"
	"atrium/internal/handlers/user"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Room        room.Handler
	User        user.Handler
	Reservation reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
