package plugin

import "sync"

// Status describes an installed plugin's sync state.
type Status string

const (
	StatusSynced  Status = "synced"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Instance is a plugin with its resolved install location.
type Instance struct {
	Spec
	Path   string
	Commit string
	Status Status
}

// Registry stores plugin instances keyed by directory name.
type Registry struct {
	plugins map[string]*Instance
	mu      sync.RWMutex
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]*Instance),
	}
}

// Set adds a plugin instance to the registry.
func (r *Registry) Set(instance *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plugins[instance.DirName()] = instance
}

// Get returns the plugin instance with the given directory name.
func (r *Registry) Get(name string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.plugins[name]
	return instance, ok
}

// List returns all plugin instances.
func (r *Registry) List() []*Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instances := make([]*Instance, 0, len(r.plugins))
	for _, instance := range r.plugins {
		instances = append(instances, instance)
	}

	return instances
}

// Delete deletes the plugin instance with the given directory name.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.plugins, name)
}
