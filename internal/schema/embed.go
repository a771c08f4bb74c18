package schema

import "embed"

// Bundled contains the compiled-in completion definitions, one YAML
// document per command.
//
//go:embed data/*.yaml
var Bundled embed.FS
