// Package module wires meta endpoints into the API
package module

import (
	"time"

	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"

	metahttp "wildwatch/internal/services/api/meta/http"
)

// Ports optionally passed with modkit.WithPorts
type Ports struct {
	Providers map[string]metahttp.Configured
}

// Module implements modkit.Module
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module mounted at /meta
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("meta", "/meta", opts...), startedAt: deps.Now().Now()}
	p, _ := m.Built.Ports.(Ports)

	m.Routes = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "wildwatch-api",
			StartedAt:   m.startedAt,
			Clock:       deps.Now(),
			PG:          deps.PG,
			Providers:   p.Providers,
		})
	}
	return m
}
