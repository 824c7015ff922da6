package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/passway/passway/internal/app"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/service"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/internal/utils"
)

// getSession is the login step of the challenge-response protocol. The
// caller submits its credential id and a base64 signature over the
// deployment's fixed message; a valid signature yields an authenticated
// session delivered as a cookie.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	credentialID := r.Header.Get(credentialIDHeader)
	if credentialID == "" {
		log.Err(ErrEmptyCredentialIDHeader).Send()
		utils.WriteAPIError(w, ErrEmptyCredentialIDHeader.Error(), http.StatusBadRequest)
		return
	}

	signatureBase64 := r.Header.Get(signatureHeader)
	if signatureBase64 == "" {
		log.Err(ErrEmptySignatureHeader).Send()
		utils.WriteAPIError(w, ErrEmptySignatureHeader.Error(), http.StatusBadRequest)
		return
	}

	signature, err := base64.StdEncoding.DecodeString(signatureBase64)
	if err != nil {
		log.Err(ErrBadSignatureEncoding).Send()
		utils.WriteAPIError(w, app.MsgInvalidSignature, http.StatusBadRequest)
		return
	}

	_, token, err := h.services.SessionService.Login(ctx, credentialID, signature)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCredentialNotFound):
			log.Err(err).Str("credential_id", credentialID).Msg("unknown credential")
			utils.WriteAPIError(w, fmt.Sprintf(app.MsgCredentialNotFoundFmt, credentialID), http.StatusNotFound)
			return
		case errors.Is(err, service.ErrInvalidSignature):
			log.Err(err).Str("credential_id", credentialID).Msg("signature verification failed")
			utils.WriteAPIError(w, app.MsgInvalidSignature, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteAPIError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			utils.WriteAPIError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	utils.WriteAPISuccess(w, app.MsgSessionIssued, http.StatusOK)
}

// deleteSession revokes the caller's session. Runs behind sessionAuth, so
// the cookie is known to be present and currently valid.
func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		log.Err(ErrNoSessionCookie).Send()
		utils.WriteAPIError(w, app.MsgPermissionDenied, http.StatusForbidden)
		return
	}

	if err := h.services.SessionService.Logout(ctx, cookie.Value); err != nil {
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			log.Err(err).Msg("session already revoked")
			utils.WriteAPIError(w, app.MsgPermissionDenied, http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during logout")
			utils.WriteAPIError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	// expire the cookie client-side as well
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	utils.WriteAPISuccess(w, app.MsgLoggedOut, http.StatusOK)
}
