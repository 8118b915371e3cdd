package routers

import (
	"nutriplan-service/internal/app/delivery/http/controllers"
	"nutriplan-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.With(middlewares.Authenticate).Post("/", appointmentController.CreateAppointment)
	router.With(middlewares.Authenticate).Get("/", appointmentController.FindMyAppointments)
	router.With(middlewares.Authenticate).Get("/agenda", appointmentController.FindAgenda)
	router.With(middlewares.Authenticate).Get("/watch", appointmentController.WatchMyAppointments)
	router.With(middlewares.Authenticate).Get("/date", appointmentController.FindByDate)
	router.With(middlewares.Authenticate).Get("/status", appointmentController.FindByStatus)

	router.With(middlewares.Authenticate, middlewares.RequireNutritionist).Patch("/{appointmentID}/accept", appointmentController.AcceptAppointment)
	router.With(middlewares.Authenticate, middlewares.RequireNutritionist).Patch("/{appointmentID}/reject", appointmentController.RejectAppointment)
	router.With(middlewares.Authenticate).Patch("/{appointmentID}/cancel", appointmentController.CancelAppointment)
	router.With(middlewares.Authenticate, middlewares.RequireNutritionist).Patch("/{appointmentID}/reactivate", appointmentController.ReactivateAppointment)
}
