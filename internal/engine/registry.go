package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// DefaultHandle is the handle Get falls back to when given an empty one.
const DefaultHandle = "default"

// Registry is an explicitly owned mapping from handle to execution context.
// It replaces ambient process-wide context state: whichever component needs
// handle lookup holds a registry and passes it along.
type Registry struct {
	mu       sync.Mutex
	contexts map[string]*ExecutionContext
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{contexts: make(map[string]*ExecutionContext)}
}

// Get returns the context registered under the handle, creating a CPU
// float-precision context lazily on first use. An empty handle maps to
// DefaultHandle.
func (r *Registry) Get(handle string) (*ExecutionContext, error) {
	if handle == "" {
		handle = DefaultHandle
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ctx, ok := r.contexts[handle]; ok {
		return ctx, nil
	}

	ctx, err := New(handle, CPUDeviceID, PrecisionFloat)
	if err != nil {
		return nil, err
	}
	r.contexts[handle] = ctx
	return ctx, nil
}

// Open constructs a context with the given device and precision and
// registers it under its name. It fails if the handle is taken or the
// precision is invalid.
func (r *Registry) Open(name string, deviceID int, precision Precision) (*ExecutionContext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contexts[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrHandleInUse, name)
	}

	ctx, err := New(name, deviceID, precision)
	if err != nil {
		return nil, err
	}
	r.contexts[name] = ctx
	return ctx, nil
}

// NewContext mints a fresh unique handle and registers a context under it.
func (r *Registry) NewContext(deviceID int, precision Precision) (*ExecutionContext, error) {
	for {
		ctx, err := r.Open(uuid.NewString(), deviceID, precision)
		if err == nil || !errors.Is(err, ErrHandleInUse) {
			return ctx, err
		}
	}
}

// Release deregisters the handle. Releasing an unknown handle is a no-op.
func (r *Registry) Release(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contexts, handle)
}

// Handles returns the registered handles in sorted order.
func (r *Registry) Handles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	handles := make([]string, 0, len(r.contexts))
	for h := range r.contexts {
		handles = append(handles, h)
	}
	sort.Strings(handles)
	return handles
}

// With runs fn against a freshly registered context and guarantees
// deregistration on every exit path, including failure.
func (r *Registry) With(name string, deviceID int, precision Precision, fn func(*ExecutionContext) error) error {
	ctx, err := r.Open(name, deviceID, precision)
	if err != nil {
		return err
	}
	defer r.Release(name)
	return fn(ctx)
}
