package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/passway/passway/internal/config"
	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/utils"
	"github.com/passway/passway/models"
)

const (
	credentialIDHeader = "x-passway-id"
	signatureHeader    = "x-passway-signature"

	// sessionCookieName is the cookie under which the server hands back the
	// session token.
	sessionCookieName = "passway"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	sessionToken string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.ServerURL and configures the underlying HTTP client with the
// resolved base URL and request timeout. The client's cookie jar carries the
// session cookie between calls.
//
// Returns an error if adapterCfg.ServerURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server url: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// PutUser implements [ServerAdapter]. It PUTs the credential record to
// PUT /v1/user. A 201 response marks the create path, 200 the update path.
func (h *httpServerAdapter) PutUser(ctx context.Context, user models.User) (bool, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Put("/v1/user")
	if err != nil {
		return false, fmt.Errorf("put user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return resp.StatusCode() == http.StatusCreated, nil
}

// GetUser implements [ServerAdapter]. It GETs /v1/user with the credential id
// in the x-passway-id header and decodes the envelope fields from the
// response.
func (h *httpServerAdapter) GetUser(ctx context.Context, credentialID string) (models.UserKeys, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(credentialIDHeader, credentialID).
		Get("/v1/user")
	if err != nil {
		return models.UserKeys{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserKeys{}, err
	}

	var body models.UserResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.UserKeys{}, fmt.Errorf("decode user response: %w", err)
	}

	return body.User, nil
}

// GetSession implements [ServerAdapter]. It GETs /v1/session with the
// credential id and base64 signature headers. On 200 the issued session
// cookie is captured for replay; a 400 response is reported as
// [ErrInvalidSignature].
func (h *httpServerAdapter) GetSession(ctx context.Context, credentialID string, signature []byte) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(credentialIDHeader, credentialID).
		SetHeader(signatureHeader, base64.StdEncoding.EncodeToString(signature)).
		Get("/v1/session")
	if err != nil {
		return fmt.Errorf("get session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrBadRequest) {
			return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		}
		return err
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			h.sessionToken = cookie.Value
			return nil
		}
	}

	return fmt.Errorf("server response carries no %s cookie", sessionCookieName)
}

// DeleteSession implements [ServerAdapter]. It DELETEs /v1/session and drops
// the locally held session token regardless of outcome, so a rejected logout
// still leaves the adapter logged out.
func (h *httpServerAdapter) DeleteSession(ctx context.Context) error {
	if h.sessionToken == "" {
		return ErrNoSession
	}

	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/v1/session")

	h.sessionToken = ""

	if err != nil {
		return fmt.Errorf("delete session request: %w", err)
	}

	return mapHTTPError(resp)
}

// SessionToken implements [ServerAdapter].
func (h *httpServerAdapter) SessionToken() string {
	return h.sessionToken
}

// UploadContent implements [ServerAdapter]. It PUTs the opaque blob to
// PUT /v1/content/{name}. Requires an active session.
func (h *httpServerAdapter) UploadContent(ctx context.Context, name string, data []byte) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Put("/v1/content/" + url.PathEscape(name))
	if err != nil {
		return fmt.Errorf("upload content request: %w", err)
	}

	return mapHTTPError(resp)
}

// DownloadContent implements [ServerAdapter]. It GETs /v1/content/{name} and
// returns the raw blob bytes. Requires an active session.
func (h *httpServerAdapter) DownloadContent(ctx context.Context, name string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/v1/content/" + url.PathEscape(name))
	if err != nil {
		return nil, fmt.Errorf("download content request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// ListContent implements [ServerAdapter]. It GETs /v1/content and decodes the
// item list. Requires an active session.
func (h *httpServerAdapter) ListContent(ctx context.Context) ([]models.ContentItem, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/v1/content")
	if err != nil {
		return nil, fmt.Errorf("list content request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var body models.ContentListResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode content list response: %w", err)
	}

	return body.Items, nil
}
