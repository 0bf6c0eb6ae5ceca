// Package modkit is the small toolkit service and API modules are composed with
package modkit

import "wildwatch/internal/modkit/module"

// Module is the surface api.Mount composes: routes, exported ports and a registry name
type Module = module.Module
