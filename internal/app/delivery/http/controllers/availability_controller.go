package controllers

import (
	"context"
	"net/http"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/dto/requests"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
	}
}

func (ctrl *AvailabilityController) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := &requests.GetAvailabilityRequest{
		Date:           r.URL.Query().Get("date"),
		NutritionistID: r.URL.Query().Get("nutritionistId"),
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	input := &contracts.GetAvailableSlotsInput{
		Date:           request.Date,
		NutritionistID: request.NutritionistID,
	}
	// Patients get their own pending slots filtered out.
	if session.IsPatient() {
		input.PatientID = sessionPatientID(session)
	}

	ctrl.Log.Info("AvailabilityController.GetAvailableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, input.Date),
		zap.String(constvars.LoggingNutritionistIDKey, input.NutritionistID))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	slots, err := ctrl.AvailabilityUsecase.GetAvailableSlots(ctx, input)
	if err != nil {
		ctrl.respondError(w, requestID, "GetAvailableSlots", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, slots)
}

func (ctrl *AvailabilityController) GetAvailableSlotsForRange(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := &requests.GetAvailabilityRangeRequest{
		StartDate:      r.URL.Query().Get("startDate"),
		EndDate:        r.URL.Query().Get("endDate"),
		NutritionistID: r.URL.Query().Get("nutritionistId"),
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	input := &contracts.GetAvailableSlotsForRangeInput{
		StartDate:      request.StartDate,
		EndDate:        request.EndDate,
		NutritionistID: request.NutritionistID,
	}
	if session.IsPatient() {
		input.PatientID = sessionPatientID(session)
	}

	ctrl.Log.Info("AvailabilityController.GetAvailableSlotsForRange called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("start_date", input.StartDate),
		zap.String("end_date", input.EndDate))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	availability, err := ctrl.AvailabilityUsecase.GetAvailableSlotsForRange(ctx, input)
	if err != nil {
		ctrl.respondError(w, requestID, "GetAvailableSlotsForRange", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, availability)
}

func (ctrl *AvailabilityController) respondError(w http.ResponseWriter, requestID, operation string, err error) {
	ctrl.Log.Error("Error in AvailabilityController."+operation,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err))
	if err == context.DeadlineExceeded {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
