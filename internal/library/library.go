// Package library resolves script names to compiled dialogue graphs.
// A name is looked up in the built-in registry, then in the sqlite library,
// then treated as a file path.
package library

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/dscript/internal/dscript"
	"github.com/vovakirdan/dscript/internal/registry"
	"github.com/vovakirdan/dscript/internal/storage"
)

// Origin tells where a script came from.
type Origin string

const (
	OriginBuiltin Origin = "builtin"
	OriginLibrary Origin = "library"
	OriginFile    Origin = "file"
)

// Script is a resolved and compiled script.
type Script struct {
	Name   string
	Origin Origin
	Source string
	Root   *dscript.Node
}

// ErrUnknownScript is returned when a name matches nothing.
var ErrUnknownScript = errors.New("library: unknown script")

// Source finds the raw source for name. store may be nil.
func Source(name string, store *storage.Store) (string, Origin, error) {
	if registry.Exists(name) {
		src, err := registry.Source(name)
		return src, OriginBuiltin, err
	}

	if store != nil {
		entry, err := store.Script(name)
		if err == nil {
			return entry.Source, OriginLibrary, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return "", "", err
		}
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("%w %q", ErrUnknownScript, name)
		}
		return "", "", fmt.Errorf("library: cannot read %s: %w", name, err)
	}
	return string(data), OriginFile, nil
}

// Load resolves and compiles name. store may be nil.
func Load(name string, store *storage.Store) (*Script, error) {
	src, origin, err := Source(name, store)
	if err != nil {
		return nil, err
	}

	root, err := dscript.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Script{
		Name:   name,
		Origin: origin,
		Source: src,
		Root:   root,
	}, nil
}
