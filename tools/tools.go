//go:build tools

package tools

import (
	// Importing these here is the canonical Go "tools" pattern:
	// https://github.com/golang/go/wiki/Modules#how-can-i-track-tool-dependencies-for-a-module
	//
	// `go mod tidy` processes these imports to populate go.sum with all
	// entries needed by `go run golang.org/x/tools/cmd/goimports`.
	_ "golang.org/x/tools/go/packages"
	_ "golang.org/x/tools/imports"
)
