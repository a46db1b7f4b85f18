// Package tablestore provides access to the external table-object store:
// a generic key/value record service where every domain entity is a uuid
// plus a flat string property map.
package tablestore

import (
	"context"

	"pocketlib/internal/errors"

	"github.com/google/uuid"
)

// Object is one stored record.
type Object struct {
	UUID       uuid.UUID         `json:"uuid"`
	TableID    int               `json:"table_id"`
	Properties map[string]string `json:"properties"`
}

// Client is the store contract consumed by the repositories. Properties
// are flat string maps; all type coercion happens in the repository
// codecs, symmetrically in both directions.
type Client interface {
	Get(ctx context.Context, id uuid.UUID) (*Object, error)
	Create(ctx context.Context, tableID int, properties map[string]string) (*Object, error)
	Update(ctx context.Context, id uuid.UUID, properties map[string]string) (*Object, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTable(ctx context.Context, tableID int) ([]*Object, error)
}

// Store errors. Anything else returned by a Client is an upstream
// transport failure.
var (
	ErrObjectNotFound = errors.New("table object not found")
	ErrUpstream       = errors.New("table store unavailable")
)
