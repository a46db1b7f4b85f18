package service

import (
	"context"
)

// ImageAnalysis is the lazily computed byproduct of an uploaded image.
// Absence (empty Blurhash) is a valid "not yet computed" state.
type ImageAnalysis struct {
	Blurhash    string `json:"blurhash"`
	AspectRatio string `json:"aspect_ratio"`
}

// ImageAnalyzer computes blurhash and aspect ratio for image bytes. The
// call is expected to be slow; callers run it as fire-and-forget
// background work and never block a response on it.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, data []byte) (*ImageAnalysis, error)
}
