package controllers

import (
	"context"
	"net/http"
	"nutriplan-service/internal/app/config"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/app/models"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/dto/requests"
	"nutriplan-service/internal/pkg/dto/responses"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthController exchanges an upstream-verified user id for a service
// session. Identity verification itself happens outside this service; this
// endpoint only materializes the session and hands back the bearer token.
type AuthController struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	UserUsecase    contracts.UserUsecase
	InternalConfig *config.InternalConfig
}

func NewAuthController(
	logger *zap.Logger,
	sessionService contracts.SessionService,
	userUsecase contracts.UserUsecase,
	internalConfig *config.InternalConfig,
) *AuthController {
	return &AuthController{
		Log:            logger,
		SessionService: sessionService,
		UserUsecase:    userUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *AuthController) CreateSession(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ctrl.Log.Info("AuthController.CreateSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	var request requests.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	user, err := ctrl.UserUsecase.GetUserByID(ctx, request.UserID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if user == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrNotMatchRoleType(nil))
		return
	}

	session := &models.Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
	}
	if user.IsPatient() {
		session.PatientID = user.ID
	}
	if user.IsNutritionist() {
		session.NutritionistID = user.ID
	}

	if err := ctrl.SessionService.SaveSession(ctx, session); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, ctrl.InternalConfig.JWT.Secret, ctrl.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateSessionSuccessMessage, responses.Session{
		Token: token,
		Role:  user.Role,
	})
}

func (ctrl *AuthController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	ctrl.Log.Info("AuthController.DeleteSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()

	if err := ctrl.SessionService.DeleteSession(ctx, session.SessionID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteSessionSuccessMessage, nil)
}
