package controllers

import (
	"context"
	"fmt"
	"net/http"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/dto/requests"
	"nutriplan-service/internal/pkg/dto/responses"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const handlerTimeout = 10 * time.Second

type AppointmentController struct {
	Log                   *zap.Logger
	AppointmentUsecase    contracts.AppointmentUsecase
	TransitionUsecase     contracts.TransitionUsecase
	UserUsecase           contracts.UserUsecase
	AppointmentRepository contracts.AppointmentRepository
}

func NewAppointmentController(
	logger *zap.Logger,
	appointmentUsecase contracts.AppointmentUsecase,
	transitionUsecase contracts.TransitionUsecase,
	userUsecase contracts.UserUsecase,
	appointmentRepository contracts.AppointmentRepository,
) *AppointmentController {
	return &AppointmentController{
		Log:                   logger,
		AppointmentUsecase:    appointmentUsecase,
		TransitionUsecase:     transitionUsecase,
		UserUsecase:           userUsecase,
		AppointmentRepository: appointmentRepository,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	ctrl.Log.Info("AppointmentController.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	var request requests.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	// A patient always books for themselves.
	if session.IsPatient() {
		request.PatientID = sessionPatientID(session)
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.CreateAppointment(ctx, &request)
	if err != nil {
		ctrl.respondError(w, requestID, "CreateAppointment", err)
		return
	}

	response := buildAppointmentResponse(ctx, ctrl.UserUsecase, appointment)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindMyAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	ctrl.Log.Info("AppointmentController.FindMyAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.FindByPatient(ctx, sessionPatientID(session))
	if err != nil {
		ctrl.respondError(w, requestID, "FindMyAppointments", err)
		return
	}

	response := buildAppointmentResponses(ctx, ctrl.UserUsecase, appointments)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindAgenda(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	ctrl.Log.Info("AppointmentController.FindAgenda called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	agenda, err := ctrl.AppointmentUsecase.FindAgendaByPatient(ctx, sessionPatientID(session))
	if err != nil {
		ctrl.respondError(w, requestID, "FindAgenda", err)
		return
	}

	response := map[string][]responses.Appointment{}
	for date, appointments := range agenda {
		response[date] = buildAppointmentResponses(ctx, ctrl.UserUsecase, appointments)
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAgendaSuccessMessage, response)
}

func (ctrl *AppointmentController) FindByDate(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	date := r.URL.Query().Get("date")
	ctrl.Log.Info("AppointmentController.FindByDate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, date))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.FindByDate(ctx, date, sessionNutritionistID(session))
	if err != nil {
		ctrl.respondError(w, requestID, "FindByDate", err)
		return
	}

	response := buildAppointmentResponses(ctx, ctrl.UserUsecase, appointments)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindByStatus(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	ctrl.Log.Info("AppointmentController.FindByStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStatusKey, status))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.FindByStatus(ctx, status, sessionNutritionistID(session))
	if err != nil {
		ctrl.respondError(w, requestID, "FindByStatus", err)
		return
	}

	response := buildAppointmentResponses(ctx, ctrl.UserUsecase, appointments)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

// WatchMyAppointments streams the patient's appointment list as server-sent
// events. A new snapshot is pushed on every backend change until the client
// disconnects.
func (ctrl *AppointmentController) WatchMyAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrScheduling("Streaming is not supported by this connection"))
		return
	}
	ctrl.Log.Info("AppointmentController.WatchMyAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	events := make(chan []models.Appointment, 1)
	unsubscribe, err := ctrl.AppointmentRepository.OnPatientAppointmentsChange(r.Context(), sessionPatientID(session), func(appointments []models.Appointment) {
		// Drop the stale snapshot if the client is slow; only the latest matters.
		select {
		case events <- appointments:
		default:
			select {
			case <-events:
			default:
			}
			events <- appointments
		}
	})
	if err != nil {
		ctrl.respondError(w, requestID, "WatchMyAppointments", err)
		return
	}
	defer unsubscribe()

	w.Header().Set(constvars.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(constvars.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case appointments := <-events:
			payload, marshalErr := json.Marshal(appointments)
			if marshalErr != nil {
				ctrl.Log.Warn("AppointmentController.WatchMyAppointments failed to marshal snapshot",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(marshalErr))
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (ctrl *AppointmentController) AcceptAppointment(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "AcceptAppointment", ctrl.TransitionUsecase.AcceptAppointment, constvars.AcceptAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) RejectAppointment(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "RejectAppointment", ctrl.TransitionUsecase.RejectAppointment, constvars.RejectAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "CancelAppointment", ctrl.TransitionUsecase.CancelAppointment, constvars.CancelAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) ReactivateAppointment(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "ReactivateAppointment", ctrl.TransitionUsecase.ReactivateAppointment, constvars.ReactivateAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) transition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	apply func(context.Context, string) (*models.Appointment, error),
	successMessage string,
) {
	requestID, _, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")
	ctrl.Log.Info("AppointmentController."+name+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	appointment, err := apply(ctx, appointmentID)
	if err != nil {
		ctrl.respondError(w, requestID, name, err)
		return
	}

	response := buildAppointmentResponse(ctx, ctrl.UserUsecase, appointment)
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, response)
}

func (ctrl *AppointmentController) respondError(w http.ResponseWriter, requestID, operation string, err error) {
	ctrl.Log.Error("Error in AppointmentController."+operation,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err))
	if err == context.DeadlineExceeded {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
