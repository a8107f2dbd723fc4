package connector

import (
	"fmt"
	"sync"

	"github.com/paylinkhq/router-core/internal/router"
	"github.com/paylinkhq/router-core/pkg/config"
)

// RedirectResponseHandler parses a redirect-return query string into the
// CallConnectorAction that should drive the follow-up PSync (spec §6,
// §8 scenario 6) — the Go shape of the teacher's ConnectorRedirectResponse
// trait, collapsed to a function since it is the adapter's only method in
// that role.
type RedirectResponseHandler func(queryParams string) (router.CallConnectorAction, error)

// Adapter bundles one acquirer's implementation of all seven flows behind
// a single registry entry. An adapter need not implement every flow — spec
// §4.1 allows a connector to support a subset — so fields may be nil; the
// registry only enforces that the adapter id itself is known.
type Adapter struct {
	Authorize        AuthorizeConnector
	Capture          CaptureConnector
	PSync            PSyncConnector
	Void             VoidConnector
	Verify           VerifyConnector
	RefundExecute    RefundExecuteConnector
	RefundSync       RefundSyncConnector
	RedirectResponse RedirectResponseHandler
}

// Registry resolves an adapter id (the routing decision's chosen acquirer)
// to its flow implementations. Registration fails closed: an id absent
// from the connectors configuration is a startup error (spec §6,
// "Unknown adapter-id -> startup error"), never a runtime surprise.
type Registry struct {
	mu       sync.RWMutex
	cfg      *config.ConnectorsConfig
	adapters map[string]Adapter
}

// NewRegistry constructs an empty registry bound to cfg. Adapters are
// registered with Register once each is built during wiring (cmd/router).
func NewRegistry(cfg *config.ConnectorsConfig) *Registry {
	return &Registry{
		cfg:      cfg,
		adapters: make(map[string]Adapter),
	}
}

// Register binds id to adapter. It fails if id is not a recognised entry
// in the connectors configuration, or if id was already registered.
func (r *Registry) Register(id string, adapter Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cfg.Entries[id]; !ok {
		return fmt.Errorf("connector registry: unknown adapter id %q: not present in connectors configuration", id)
	}
	if _, exists := r.adapters[id]; exists {
		return fmt.Errorf("connector registry: adapter id %q already registered", id)
	}
	r.adapters[id] = adapter
	return nil
}

// Get resolves id to its registered Adapter.
func (r *Registry) Get(id string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, ok := r.adapters[id]
	if !ok {
		return Adapter{}, fmt.Errorf("connector registry: no adapter registered for id %q", id)
	}
	return adapter, nil
}

// BaseURL returns the configured base URL for id, the value GetURL
// implementations resolve against.
func (r *Registry) BaseURL(id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.cfg.Entries[id]
	if !ok {
		return "", fmt.Errorf("connector registry: unknown adapter id %q", id)
	}
	return entry.BaseURL, nil
}

// RouterHeaderValue returns the configured X-Router trace header value,
// empty unless explicitly set (SPEC_FULL.md Open Question: default empty,
// configurable).
func (r *Registry) RouterHeaderValue() string {
	return r.cfg.RouterHeaderValue
}
