package middlewares

import (
	"context"
	"net/http"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the Bearer token into the redis-backed session and
// puts the parsed session on the request context. The session is re-saved on
// every authenticated request, giving it a sliding TTL.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get(constvars.HeaderAuthorization)
		if authorization == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimPrefix(authorization, "Bearer ")
		if token == authorization || token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		sessionData, err := m.SessionService.GetSessionData(r.Context(), sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		session, err := m.SessionService.ParseSessionData(r.Context(), sessionData)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		if err := m.SessionService.SaveSession(r.Context(), session); err != nil {
			m.Log.Warn("Middlewares.Authenticate session refresh failed",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireNutritionist guards the transition and conflict endpoints.
func (m *Middlewares) RequireNutritionist(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := utils.GetSession(r.Context())
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if session.IsNotNutritionist() {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotMatchRoleType(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
