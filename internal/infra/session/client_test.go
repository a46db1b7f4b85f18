package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pocketlib/config"
	"pocketlib/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) service.SessionService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Session.BaseURL = server.URL

	return NewClient(cfg, slog.New(slog.DiscardHandler))
}

func TestValidate_KnownToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "token-1", payload["access_token"])

		json.NewEncoder(w).Encode(map[string]string{
			"user_id": "user-1",
			"app_id":  "pocketlib",
		})
	})

	session, err := client.Validate(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "pocketlib", session.AppID)
}

func TestValidate_UnknownToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Validate(context.Background(), "token-x")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestValidate_UpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Validate(context.Background(), "token-x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrSessionNotFound)
}
