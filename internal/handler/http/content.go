package http

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/passway/passway/internal/app"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/service"
	"github.com/passway/passway/internal/store"
	"github.com/passway/passway/internal/utils"
	"github.com/passway/passway/models"
)

func (h *Handler) listContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, found := utils.GetSubjectIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listContent").Msg("no subject id in context")
		utils.WriteAPIError(w, app.MsgPermissionDenied, http.StatusForbidden)
		return
	}

	items, err := h.services.ContentService.List(ctx, subjectID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listContent").Msg("error listing content")
		utils.WriteAPIError(w, "error listing content", statusFromError(err))
		return
	}

	response := models.ContentListResponse{
		Items:  items,
		Length: len(items),
	}

	utils.WriteJSON(w, response, http.StatusOK) //nolint:errcheck
}

func (h *Handler) uploadContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, found := utils.GetSubjectIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.uploadContent").Msg("no subject id in context")
		utils.WriteAPIError(w, app.MsgPermissionDenied, http.StatusForbidden)
		return
	}

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.uploadContent").Msg("bad content name")
		utils.WriteAPIError(w, "bad content name", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.uploadContent").Msg("failed to read request body")
		utils.WriteAPIError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.services.ContentService.Upload(ctx, subjectID, name, data); err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			log.Err(err).Str("name", name).Msg("invalid content upload")
			utils.WriteAPIError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		log.Err(err).Str("name", name).Msg("error uploading content")
		utils.WriteAPIError(w, "error uploading content", statusFromError(err))
		return
	}

	utils.WriteAPISuccess(w, app.MsgStored, http.StatusCreated)
}

func (h *Handler) downloadContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, found := utils.GetSubjectIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.downloadContent").Msg("no subject id in context")
		utils.WriteAPIError(w, app.MsgPermissionDenied, http.StatusForbidden)
		return
	}

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		log.Err(err).Str("func", "*Handler.downloadContent").Msg("bad content name")
		utils.WriteAPIError(w, "bad content name", http.StatusBadRequest)
		return
	}

	data, err := h.services.ContentService.Download(ctx, subjectID, name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrContentNotFound):
			log.Err(err).Str("name", name).Msg("unknown content name")
			utils.WriteAPIError(w, app.MsgContentNotFound, http.StatusNotFound)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Str("name", name).Msg("invalid content download")
			utils.WriteAPIError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		default:
			log.Err(err).Str("name", name).Msg("error downloading content")
			utils.WriteAPIError(w, "error downloading content", statusFromError(err))
			return
		}
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}
