package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
)

const sessionName = "stockroom_session"
const sessionOwnerIDKey = "owner_id"

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It reads the session cookie, extracts the OwnerID, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing, invalid, or lacks a valid owner_id.
//
// After this middleware, handlers can safely call auth.OwnerIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ownerIDStr, ok := session.Values[sessionOwnerIDKey].(string)
			if !ok || ownerIDStr == "" {
				log.WarnContext(r.Context(), "session missing owner_id")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			ownerID, err := uuid.Parse(ownerIDStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid owner_id in session", "owner_id", ownerIDStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			ctx := WithOwnerID(r.Context(), ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
