package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Store is opaque key-value storage for the persisted selection.
// Get reports found=false when nothing is stored under key.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Registry owns the catalog and the process-wide selected currency.
type Registry struct {
	catalog *Catalog
	store   Store
	key     string

	mu       sync.RWMutex
	selected string
}

func NewRegistry(catalog *Catalog, store Store, key string) *Registry {
	if key == "" {
		key = DefaultSettingsKey
	}
	return &Registry{catalog: catalog, store: store, key: key}
}

func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Init reads the persisted selection once. Missing or corrupt data leaves
// the registry on the catalog default; only storage failures are returned.
func (r *Registry) Init(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return fmt.Errorf("load currency selection: %w", err)
	}
	if !found {
		return nil
	}
	code, ok := r.decode(raw)
	if !ok {
		slog.Warn("ignoring persisted currency selection", "key", r.key)
		return nil
	}
	r.mu.Lock()
	r.selected = code
	r.mu.Unlock()
	return nil
}

// Selected returns the current currency, always a member of the catalog.
func (r *Registry) Selected() Currency {
	r.mu.RLock()
	code := r.selected
	r.mu.RUnlock()
	if c, ok := r.catalog.ByCode(code); ok {
		return c
	}
	return r.catalog.Default()
}

// SetSelected switches the selection when code is in the catalog. Unknown
// codes return false with no change. The selection only changes once the
// snapshot is persisted.
func (r *Registry) SetSelected(ctx context.Context, code string) (bool, error) {
	c, ok := r.catalog.ByCode(code)
	if !ok {
		return false, nil
	}
	if r.store != nil {
		payload, err := json.Marshal(c)
		if err != nil {
			return false, err
		}
		if err := r.store.Set(ctx, r.key, payload); err != nil {
			return false, fmt.Errorf("persist currency selection: %w", err)
		}
	}
	r.mu.Lock()
	r.selected = c.Code
	r.mu.Unlock()
	return true, nil
}

// decode accepts the JSON snapshot written by SetSelected and keeps only
// the code; the catalog stays the source of truth for currency fields.
func (r *Registry) decode(raw []byte) (string, bool) {
	var snapshot struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return "", false
	}
	if !r.catalog.Available(snapshot.Code) {
		return "", false
	}
	return snapshot.Code, true
}
