package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pocketlib/config"
	"pocketlib/internal/errors"

	"github.com/google/uuid"
)

// httpClient talks to the table-object store's JSON API. Timeouts and
// retries live here, not in the callers; every failure maps to either
// ErrObjectNotFound or ErrUpstream.
type httpClient struct {
	baseURL string
	apiKey  string
	appID   string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPClient creates the production store client from config.
func NewHTTPClient(cfg *config.Config, logger *slog.Logger) Client {
	timeout := cfg.TableStore.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &httpClient{
		baseURL: cfg.TableStore.BaseURL,
		apiKey:  cfg.TableStore.APIKey,
		appID:   cfg.TableStore.AppID,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type objectPayload struct {
	UUID       string            `json:"uuid,omitempty"`
	TableID    int               `json:"table_id,omitempty"`
	AppID      string            `json:"app_id,omitempty"`
	Properties map[string]string `json:"properties"`
}

type listPayload struct {
	TableObjects []objectPayload `json:"table_objects"`
}

func (c *httpClient) Get(ctx context.Context, id uuid.UUID) (*Object, error) {
	var payload objectPayload
	if err := c.do(ctx, http.MethodGet, "/v1/table_objects/"+id.String(), nil, &payload); err != nil {
		return nil, err
	}

	return payload.toObject()
}

func (c *httpClient) Create(ctx context.Context, tableID int, properties map[string]string) (*Object, error) {
	body := objectPayload{
		TableID:    tableID,
		AppID:      c.appID,
		Properties: properties,
	}

	var payload objectPayload
	if err := c.do(ctx, http.MethodPost, "/v1/table_objects", &body, &payload); err != nil {
		return nil, err
	}

	return payload.toObject()
}

func (c *httpClient) Update(ctx context.Context, id uuid.UUID, properties map[string]string) (*Object, error) {
	body := objectPayload{Properties: properties}

	var payload objectPayload
	if err := c.do(ctx, http.MethodPut, "/v1/table_objects/"+id.String(), &body, &payload); err != nil {
		return nil, err
	}

	return payload.toObject()
}

func (c *httpClient) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/v1/table_objects/"+id.String(), nil, nil)
}

func (c *httpClient) ListByTable(ctx context.Context, tableID int) ([]*Object, error) {
	var payload listPayload
	path := fmt.Sprintf("/v1/tables/%d/table_objects?app_id=%s", tableID, c.appID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}

	objects := make([]*Object, 0, len(payload.TableObjects))
	for _, p := range payload.TableObjects {
		obj, err := p.toObject()
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	return objects, nil
}

func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("table store request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)

		return errors.Wrap(ErrUpstream, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrObjectNotFound
	case resp.StatusCode >= 400:
		c.logger.Error("table store returned an error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return errors.Wrapf(ErrUpstream, "status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(ErrUpstream, err.Error())
	}

	return nil
}

func (p objectPayload) toObject() (*Object, error) {
	id, err := uuid.Parse(p.UUID)
	if err != nil {
		return nil, errors.Wrap(ErrUpstream, "malformed object uuid")
	}
	props := p.Properties
	if props == nil {
		props = map[string]string{}
	}

	return &Object{UUID: id, TableID: p.TableID, Properties: props}, nil
}
