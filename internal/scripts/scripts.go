// Package scripts bundles the built-in demo scripts and registers them.
package scripts

import (
	"embed"

	"github.com/vovakirdan/dscript/internal/registry"
)

//go:embed builtin/*.ds
var builtin embed.FS

// Built-in script names mapped to their titles.
var titles = map[string]string{
	"mad":  "Are You Mad?",
	"gate": "The City Gate",
}

func init() {
	for name, title := range titles {
		data, err := builtin.ReadFile("builtin/" + name + ".ds")
		if err != nil {
			panic("scripts: missing built-in " + name)
		}
		registry.Register(name, title, string(data))
	}
}
