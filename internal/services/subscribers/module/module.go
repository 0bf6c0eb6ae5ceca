// Package module implements the subscribers service module
package module

import (
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/subscribers/domain"
	"wildwatch/internal/services/subscribers/repo"
	"wildwatch/internal/services/subscribers/service"
)

// Ports exposed by the subscribers module
type Ports struct {
	Registration domain.RegistrationPort
	Directory    domain.DirectoryPort
	Gate         domain.GatePort
}

// Module implements the subscribers service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new subscribers module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG())
	return &Module{deps: deps, ports: Ports{Registration: svc, Directory: svc, Gate: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "subscribers" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
