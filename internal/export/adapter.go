package export

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/worklogd/worklogd/internal/domain/report"
)

// ErrUnknownFormat indicates no adapter is registered under the name.
var ErrUnknownFormat = errors.New("unknown export format")

// Adapter renders a report into a caller-defined payload. The tracking
// core imposes no requirements on the output beyond the Report shape.
type Adapter interface {
	// Render formats the report.
	Render(rep *report.Report) ([]byte, error)
	// ContentType describes the payload for HTTP surfaces.
	ContentType() string
}

// Registry holds named export adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates a registry with the built-in adapters.
func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	r.Register("csv", NewCSVAdapter())
	r.Register("jira", NewJiraAdapter())
	return r
}

// Register adds an adapter under a format name, replacing any previous one.
func (r *Registry) Register(name string, adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[name] = adapter
}

// Get returns the adapter for a format name.
func (r *Registry) Get(name string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return adapter, nil
}

// Formats lists registered format names, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
