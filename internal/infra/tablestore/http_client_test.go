package tablestore

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pocketlib/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.TableStore.BaseURL = server.URL
	cfg.TableStore.APIKey = "test-key"
	cfg.TableStore.AppID = "pocketlib"

	return NewHTTPClient(cfg, slog.New(slog.DiscardHandler))
}

func TestHTTPClient_GetDecodesObject(t *testing.T) {
	id := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/table_objects/"+id.String(), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"uuid":       id.String(),
			"table_id":   26,
			"properties": map[string]string{"language": "en"},
		})
	})

	obj, err := client.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, obj.UUID)
	assert.Equal(t, 26, obj.TableID)
	assert.Equal(t, "en", obj.Properties["language"])
}

func TestHTTPClient_CreateSendsAppID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "pocketlib", payload["app_id"])
		assert.Equal(t, float64(21), payload["table_id"])

		json.NewEncoder(w).Encode(map[string]any{
			"uuid":       uuid.New().String(),
			"table_id":   21,
			"properties": payload["properties"],
		})
	})

	obj, err := client.Create(context.Background(), 21, map[string]string{"first_name": "Lemony"})
	require.NoError(t, err)
	assert.Equal(t, "Lemony", obj.Properties["first_name"])
}

func TestHTTPClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestHTTPClient_ServerErrorIsUpstream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUpstream)
}
