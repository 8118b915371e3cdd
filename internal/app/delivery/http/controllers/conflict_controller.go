package controllers

import (
	"context"
	"net/http"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ConflictController struct {
	Log             *zap.Logger
	ConflictUsecase contracts.ConflictUsecase
	UserUsecase     contracts.UserUsecase
}

func NewConflictController(logger *zap.Logger, conflictUsecase contracts.ConflictUsecase, userUsecase contracts.UserUsecase) *ConflictController {
	return &ConflictController{
		Log:             logger,
		ConflictUsecase: conflictUsecase,
		UserUsecase:     userUsecase,
	}
}

func (ctrl *ConflictController) ListConflictsBySlot(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")
	ctrl.Log.Info("ConflictController.ListConflictsBySlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	conflicts, err := ctrl.ConflictUsecase.ListConflictsBySlot(ctx, appointmentID)
	if err != nil {
		ctrl.respondError(w, requestID, "ListConflictsBySlot", err)
		return
	}

	response := buildAppointmentResponses(ctx, ctrl.UserUsecase, conflicts)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConflictsSuccessMessage, response)
}

func (ctrl *ConflictController) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")
	ctrl.Log.Info("ConflictController.ResolveConflict called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	resolved, err := ctrl.ConflictUsecase.ResolveConflict(ctx, appointmentID)
	if err != nil {
		ctrl.respondError(w, requestID, "ResolveConflict", err)
		return
	}

	response := buildAppointmentResponse(ctx, ctrl.UserUsecase, resolved)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResolveConflictSuccessMessage, response)
}

func (ctrl *ConflictController) respondError(w http.ResponseWriter, requestID, operation string, err error) {
	ctrl.Log.Error("Error in ConflictController."+operation,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err))
	if err == context.DeadlineExceeded {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
