// Package registry provides a global registry for built-in dialogue scripts.
// Script packs register themselves in init() functions, allowing the tools
// to discover bundled scripts without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// ScriptInfo contains metadata about a registered script.
type ScriptInfo struct {
	Name  string
	Title string
}

type entry struct {
	title  string
	source string
}

var (
	scripts = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a built-in script to the registry.
// Typically called from an init() function.
// Panics if a script with the same name is already registered.
func Register(name, title, source string) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scripts[name]; exists {
		panic(fmt.Sprintf("registry: script %q already registered", name))
	}
	scripts[name] = entry{title: title, source: source}
}

// List returns information about all registered scripts, sorted by name.
func List() []ScriptInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScriptInfo, 0, len(scripts))
	for name, e := range scripts {
		result = append(result, ScriptInfo{Name: name, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Source returns the source of a registered script.
// Returns an error if the name is not registered.
func Source(name string) (string, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := scripts[name]
	if !ok {
		return "", fmt.Errorf("registry: unknown script %q", name)
	}
	return e.source, nil
}

// Exists checks if a script with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scripts[name]
	return ok
}
