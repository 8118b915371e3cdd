package routers

import (
	"nutriplan-service/internal/app/delivery/http/controllers"
	"nutriplan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	router.With(middlewares.Authenticate).Get("/", availabilityController.GetAvailableSlots)
	router.With(middlewares.Authenticate).Get("/range", availabilityController.GetAvailableSlotsForRange)
}
