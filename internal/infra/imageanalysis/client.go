// Package imageanalysis adapts the external blurhash/aspect-ratio
// service. Analysis is slow by contract; callers invoke it from
// background goroutines only.
package imageanalysis

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

// noopAnalyzer is used when the service is not configured; blurhash
// fields simply stay in their "not yet computed" state.
type noopAnalyzer struct{}

func (noopAnalyzer) Analyze(context.Context, []byte) (*service.ImageAnalysis, error) {
	return nil, errors.New("image analysis not configured")
}

// New creates the image analysis adapter, or a noop when disabled.
func New(cfg *config.Config, logger *slog.Logger) service.ImageAnalyzer {
	if cfg.ImageAnalysis == nil || !cfg.ImageAnalysis.Enabled {
		return noopAnalyzer{}
	}

	return &client{
		baseURL: cfg.ImageAnalysis.BaseURL,
		client:  &http.Client{Timeout: 2 * time.Minute},
		logger:  logger,
	}
}

func (c *client) Analyze(ctx context.Context, data []byte) (*service.ImageAnalysis, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/analyze", bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "analyze image")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, errors.Errorf("image analysis returned status %d", resp.StatusCode)
	}

	var analysis service.ImageAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, errors.Wrap(err, "decode analysis response")
	}

	return &analysis, nil
}
