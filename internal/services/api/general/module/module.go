// Package module mounts the public subscription endpoints under /general
package module

import (
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/subscribers/domain"

	genhttp "wildwatch/internal/services/api/general/http"
)

// Ports the module needs from the subscribers service
type Ports struct {
	Registration domain.RegistrationPort
	Directory    domain.DirectoryPort
}

// Module implements modkit.Module
type Module struct{ modkit.Base }

// New constructs the module; Ports must be supplied with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("api.general", "/general", opts...)}
	p, ok := m.Built.Ports.(Ports)
	if !ok || p.Registration == nil || p.Directory == nil {
		panic("api.general: missing subscriber ports")
	}
	m.Routes = func(r httpkit.Router) {
		genhttp.Register(r, genhttp.Deps{Registration: p.Registration, Directory: p.Directory})
	}
	return m
}
