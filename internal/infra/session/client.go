// Package session implements the credential service adapter. The core
// never validates credentials itself; it asks the external session
// backend and maps its answers to typed failures.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"pocketlib/config"
	"pocketlib/internal/domain/service"
	"pocketlib/internal/errors"
)

type client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates the session service adapter from config.
func NewClient(cfg *config.Config, logger *slog.Logger) service.SessionService {
	timeout := cfg.Session.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &client{
		baseURL: cfg.Session.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type validateRequest struct {
	AccessToken string `json:"access_token"`
}

type validateResponse struct {
	UserID string `json:"user_id"`
	AppID  string `json:"app_id"`
}

// Validate checks the access token against the session backend. An
// unknown token maps to ErrSessionNotFound; transport failures surface
// as wrapped errors for the generic upstream outcome.
func (c *client) Validate(ctx context.Context, accessToken string) (*service.Session, error) {
	body, err := json.Marshal(validateRequest{AccessToken: accessToken})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/session/validate", bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("session service request failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "validate session")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusUnauthorized:
		return nil, service.ErrSessionNotFound
	case resp.StatusCode >= 400:
		return nil, errors.Errorf("session service returned status %d", resp.StatusCode)
	}

	var payload validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode session response")
	}

	return &service.Session{UserID: payload.UserID, AppID: payload.AppID}, nil
}
