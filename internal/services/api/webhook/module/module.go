// Package module mounts the detection webhook under /api/webhook
package module

import (
	"time"

	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/services/detections/domain"

	hookhttp "wildwatch/internal/services/api/webhook/http"
)

// Ports the module needs from the detections service
type Ports struct {
	Ingest domain.IngestPort
}

// Module implements modkit.Module
type Module struct{ modkit.Base }

// New constructs the module; Ports must be supplied with modkit.WithPorts.
// The inference process is the only producer, so the limiter is off unless configured
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	opts = append([]modkit.Option{modkit.WithMiddlewares(httpkit.RateLimit("webhook", o.RatePerMin, time.Minute))}, opts...)
	m := &Module{Base: modkit.NewBase("api.webhook", "/api/webhook", opts...)}
	p, ok := m.Built.Ports.(Ports)
	if !ok || p.Ingest == nil {
		panic("api.webhook: missing Ingest port")
	}
	m.Routes = func(r httpkit.Router) { hookhttp.Register(r, p.Ingest) }
	return m
}
