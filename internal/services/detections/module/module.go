// Package module implements the detections service module
package module

import (
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/detections/domain"
	"wildwatch/internal/services/detections/repo"
	"wildwatch/internal/services/detections/service"
)

// Ports exposed by the detections module
type Ports struct {
	Ingest domain.IngestPort
	Query  domain.QueryPort
}

// Module implements the detections service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the module; pub may be nil when nothing listens for detections
func New(deps modkit.Deps, pub domain.Publisher) *Module {
	o := FromConfig(deps.Cfg)

	opts := []service.Option{
		service.WithClock(deps.Now()),
		service.WithConfig(service.Config{
			Location:        o.Location,
			DefaultPageSize: o.DefaultPageSize,
			MaxPageSize:     o.MaxPageSize,
			OverviewMonths:  o.OverviewMonths,
		}),
	}
	if pub != nil {
		opts = append(opts, service.WithPublisher(pub))
	}
	svc := service.New(deps.PG, repo.NewPG(), opts...)

	return &Module{deps: deps, ports: Ports{Ingest: svc, Query: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "detections" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
