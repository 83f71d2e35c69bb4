package openvr

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNoRuntime is returned by Open for a name nothing registered.
var ErrNoRuntime = errors.New("openvr: no runtime registered under that name")

// Opener creates a runtime binding.
type Opener func() (Runtime, error)

var (
	runtimesMu sync.RWMutex
	runtimes   = map[string]Opener{}
)

// RegisterRuntime makes a runtime binding available to Open. Bindings
// register themselves from an init function; registering a name twice
// panics.
func RegisterRuntime(name string, open Opener) {
	runtimesMu.Lock()
	defer runtimesMu.Unlock()
	if open == nil {
		panic("openvr: RegisterRuntime opener is nil")
	}
	if _, dup := runtimes[name]; dup {
		panic("openvr: RegisterRuntime called twice for " + name)
	}
	runtimes[name] = open
}

// Open creates the runtime registered under name.
func Open(name string) (Runtime, error) {
	runtimesMu.RLock()
	open, ok := runtimes[name]
	runtimesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrNoRuntime, name, Runtimes())
	}
	return open()
}

// Runtimes returns the registered names, sorted.
func Runtimes() []string {
	runtimesMu.RLock()
	defer runtimesMu.RUnlock()
	names := make([]string, 0, len(runtimes))
	for name := range runtimes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
