// Package module mounts the detection views under /api/detections
package module

import (
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/detections/domain"

	dethttp "wildwatch/internal/services/api/detections/http"
)

// Ports the module needs from the detections service
type Ports struct {
	Query domain.QueryPort
}

// Module implements modkit.Module
type Module struct{ modkit.Base }

// New constructs the module; Ports must be supplied with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("api.detections", "/api/detections", opts...)}
	p, ok := m.Built.Ports.(Ports)
	if !ok || p.Query == nil {
		panic("api.detections: missing Query port")
	}
	m.Routes = func(r httpkit.Router) { dethttp.Register(r, p.Query) }
	return m
}
