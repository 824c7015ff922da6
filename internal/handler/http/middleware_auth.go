package http

import (
	"context"
	"net/http"

	"github.com/passway/passway/internal/app"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/utils"
)

// sessionAuth is an HTTP middleware that enforces cookie-based session
// authentication.
//
// It reads the session cookie, validates its token via
// [service.SessionService.Authenticate] (which also confirms the session row
// still exists, so a logged-out session fails even with a valid token), and
// on success stores the subject and session identifiers in the request
// context under [utils.SubjectIDCtxKey] and [utils.SessionIDCtxKey] before
// delegating to the next handler.
//
// Rejections respond with HTTP 403 and the uniform "Permission denied" body.
// The underlying cause is logged via the context-scoped logger, never
// surfaced to the caller.
func (h *Handler) sessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			log.Err(ErrNoSessionCookie).Send()
			utils.WriteAPIError(w, app.MsgPermissionDenied, http.StatusForbidden)
			return
		}

		ctx := r.Context()
		session, err := h.services.SessionService.Authenticate(ctx, cookie.Value)
		if err != nil {
			log.Err(err).Msg("session authentication failed")
			utils.WriteAPIError(w, app.MsgPermissionDenied, http.StatusForbidden)
			return
		}

		// Store the authenticated subject's id in the context so downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.SubjectIDCtxKey, session.UserID)
		ctx = context.WithValue(ctx, utils.SessionIDCtxKey, session.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
