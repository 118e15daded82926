//go:build tools
// +build tools

// Pins dev tools into go.mod so everyone/CI runs the same versions.
// oapi-codegen generates client-facing API types from api/openapi.yaml.
// Excluded from normal builds by the 'tools' build tag above.

package tools

import (
	_ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
)