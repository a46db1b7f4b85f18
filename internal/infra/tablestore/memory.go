package tablestore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Client used by tests. It preserves insertion
// order per table, mirroring the store's listing behavior.
type Memory struct {
	mu      sync.Mutex
	objects map[uuid.UUID]*Object
	order   map[int][]uuid.UUID
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		objects: make(map[uuid.UUID]*Object),
		order:   make(map[int][]uuid.UUID),
	}
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (*Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[id]
	if !ok {
		return nil, ErrObjectNotFound
	}

	return cloneObject(obj), nil
}

func (m *Memory) Create(_ context.Context, tableID int, properties map[string]string) (*Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := &Object{
		UUID:       uuid.New(),
		TableID:    tableID,
		Properties: cloneProps(properties),
	}
	m.objects[obj.UUID] = obj
	m.order[tableID] = append(m.order[tableID], obj.UUID)

	return cloneObject(obj), nil
}

func (m *Memory) Update(_ context.Context, id uuid.UUID, properties map[string]string) (*Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	for k, v := range properties {
		if v == "" {
			delete(obj.Properties, k)

			continue
		}
		obj.Properties[k] = v
	}

	return cloneObject(obj), nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[id]
	if !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, id)

	ids := m.order[obj.TableID]
	for i, existing := range ids {
		if existing == id {
			m.order[obj.TableID] = append(ids[:i], ids[i+1:]...)

			break
		}
	}

	return nil
}

func (m *Memory) ListByTable(_ context.Context, tableID int) ([]*Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.order[tableID]
	out := make([]*Object, 0, len(ids))
	for _, id := range ids {
		if obj, ok := m.objects[id]; ok {
			out = append(out, cloneObject(obj))
		}
	}
	return out, nil
}

func cloneObject(obj *Object) *Object {
	return &Object{
		UUID:       obj.UUID,
		TableID:    obj.TableID,
		Properties: cloneProps(obj.Properties),
	}
}

func cloneProps(props map[string]string) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v
	}

	return out
}
