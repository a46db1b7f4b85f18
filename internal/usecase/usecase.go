// Package usecase defines the application-facing operation interfaces
// and their request/response DTOs. Implementations live in impl.
package usecase

import (
	"encoding/json"
)

// LocalizedValue is a resolved language-keyed value in a response body.
type LocalizedValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// ImageView describes an uploaded image in a response body.
type ImageView struct {
	Blurhash    string `json:"blurhash,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

// OptionalImage marshals as false while no image was uploaded and as the
// ImageView object afterwards, so clients can probe presence cheaply.
type OptionalImage struct {
	Set   bool
	Image ImageView
}

// MarshalJSON implements json.Marshaler.
func (o OptionalImage) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("false"), nil
	}

	return json.Marshal(o.Image)
}

// FileView describes an uploaded book file in a response body.
type FileView struct {
	FileName string `json:"file_name,omitempty"`
}

// OptionalFile marshals as false while no file was uploaded.
type OptionalFile struct {
	Set  bool
	File FileView
}

// MarshalJSON implements json.Marshaler.
func (o OptionalFile) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("false"), nil
	}

	return json.Marshal(o.File)
}
