package http

import (
	"errors"
	"net/http"

	"github.com/passway/passway/internal/service"
	"github.com/passway/passway/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidSignature:        http.StatusBadRequest,
	service.ErrPermissionDenied:        http.StatusForbidden,
	service.ErrTokenIsExpiredOrInvalid: http.StatusForbidden,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrCredentialNotFound:      http.StatusNotFound,
	store.ErrCredentialAlreadyExists: http.StatusConflict,
	store.ErrSessionNotFound:         http.StatusForbidden,
	store.ErrContentNotFound:         http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
