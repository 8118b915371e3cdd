package controllers

import (
	"context"
	"net/http"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/dto/responses"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// requestContext pulls the request id and session that the middlewares put on
// the context. Handlers bail out with a normalized error response when either
// is missing.
func requestContext(log *zap.Logger, w http.ResponseWriter, r *http.Request) (string, *models.Session, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", nil, false
	}
	session, err := utils.GetSession(r.Context())
	if err != nil {
		utils.BuildErrorResponse(log, w, err)
		return "", nil, false
	}
	return requestID, session, true
}

func sessionPatientID(session *models.Session) string {
	if session.PatientID != "" {
		return session.PatientID
	}
	return session.UserID
}

func sessionNutritionistID(session *models.Session) string {
	if session.NutritionistID != "" {
		return session.NutritionistID
	}
	return session.UserID
}

// buildAppointmentResponses decorates appointments with display names. Name
// resolution is best effort; a failed lookup leaves the name empty rather
// than failing the listing.
func buildAppointmentResponses(ctx context.Context, userUsecase contracts.UserUsecase, appointments []models.Appointment) []responses.Appointment {
	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, buildAppointmentResponse(ctx, userUsecase, &appointments[i]))
	}
	return result
}

func buildAppointmentResponse(ctx context.Context, userUsecase contracts.UserUsecase, appointment *models.Appointment) responses.Appointment {
	response := responses.Appointment{
		ID:             appointment.ID,
		Status:         string(appointment.Status),
		PatientID:      appointment.PatientID,
		NutritionistID: appointment.NutritionistID,
		Date:           appointment.Date,
		TimeStart:      appointment.TimeStart,
		TimeEnd:        appointment.TimeEnd,
		Observations:   appointment.Observations,
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}
	if userUsecase == nil {
		return response
	}
	if patient, err := userUsecase.GetUserByID(ctx, appointment.PatientID); err == nil && patient != nil {
		response.PatientName = patient.Name
	}
	if nutritionist, err := userUsecase.GetUserByID(ctx, appointment.NutritionistID); err == nil && nutritionist != nil {
		response.NutritionistName = nutritionist.Name
	}
	return response
}
