// Package module mounts the notification endpoints under /api/notifications
package module

import (
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/subscribers/domain"

	notifyhttp "wildwatch/internal/services/api/notifications/http"
)

// Ports the module needs
type Ports struct {
	Messenger notifyhttp.Messenger
	Directory domain.DirectoryPort
}

// Module implements modkit.Module
type Module struct{ modkit.Base }

// New constructs the module; Ports must be supplied with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("api.notifications", "/api/notifications", opts...)}
	p, ok := m.Built.Ports.(Ports)
	if !ok || p.Messenger == nil || p.Directory == nil {
		panic("api.notifications: missing Messenger or Directory port")
	}
	m.Routes = func(r httpkit.Router) {
		notifyhttp.Register(r, notifyhttp.Deps{Messenger: p.Messenger, Directory: p.Directory})
	}
	return m
}
