// Package module mounts the subscriber directory under /users
package module

import (
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/subscribers/domain"

	usershttp "wildwatch/internal/services/api/users/http"
)

// Ports the module needs from the subscribers service
type Ports struct {
	Directory domain.DirectoryPort
}

// Module implements modkit.Module
type Module struct{ modkit.Base }

// New constructs the module; Ports must be supplied with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("api.users", "/users", opts...)}
	p, ok := m.Built.Ports.(Ports)
	if !ok || p.Directory == nil {
		panic("api.users: missing Directory port")
	}
	m.Routes = func(r httpkit.Router) { usershttp.Register(r, p.Directory) }
	return m
}
