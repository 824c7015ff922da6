package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/passway/passway/internal/app"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/service"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/internal/utils"
	"github.com/passway/passway/models"
)

func (h *Handler) putUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteAPIError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	// A session is optional here. Creating a record needs none; replacing an
	// existing record requires the caller to hold a session for its subject.
	var callerSubject int64
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		session, err := h.services.SessionService.Authenticate(ctx, cookie.Value)
		if err != nil {
			log.Err(err).Msg("stale session cookie on credential submission, treating as anonymous")
		} else {
			callerSubject = session.UserID
		}
	}

	_, created, err := h.services.CredentialService.UpsertUser(ctx, user, callerSubject)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteAPIError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrPermissionDenied):
			log.Err(err).Str("credential_id", user.ID).Msg("credential update refused")
			utils.WriteAPIError(w, app.MsgPermissionDenied, http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during credential submission")
			utils.WriteAPIError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	if created {
		utils.WriteAPISuccess(w, app.MsgCreated, http.StatusCreated)
		return
	}
	utils.WriteAPISuccess(w, app.MsgUpdated, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	credentialID := r.Header.Get(credentialIDHeader)
	if credentialID == "" {
		log.Err(ErrEmptyCredentialIDHeader).Send()
		utils.WriteAPIError(w, ErrEmptyCredentialIDHeader.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.services.CredentialService.GetUser(ctx, credentialID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCredentialNotFound):
			log.Err(err).Str("credential_id", credentialID).Msg("unknown credential")
			utils.WriteAPIError(w, fmt.Sprintf(app.MsgCredentialNotFoundFmt, credentialID), http.StatusNotFound)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteAPIError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during credential fetch")
			utils.WriteAPIError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	response := models.UserResponse{
		User: models.UserKeys{
			Keys: user.EncryptedKeys,
			Salt: user.Salt,
			IV:   user.IV,
		},
	}

	utils.WriteJSON(w, response, http.StatusOK) //nolint:errcheck
}
