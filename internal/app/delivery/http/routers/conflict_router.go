package routers

import (
	"nutriplan-service/internal/app/delivery/http/controllers"
	"nutriplan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachConflictRoutes(router chi.Router, middlewares *middlewares.Middlewares, conflictController *controllers.ConflictController) {
	router.With(middlewares.Authenticate, middlewares.RequireNutritionist).Get("/{appointmentID}", conflictController.ListConflictsBySlot)
	router.With(middlewares.Authenticate, middlewares.RequireNutritionist).Post("/{appointmentID}/resolve", conflictController.ResolveConflict)
}
