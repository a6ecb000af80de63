// Package myworkout holds assets embedded into the binaries.
package myworkout

import _ "embed"

// CatalogYAML is the built-in exercise catalog and seed profiles.
//
//go:embed catalog/exercises.yaml
var CatalogYAML []byte
