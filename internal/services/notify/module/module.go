// Package module wires the notify pipeline onto the event bus
package module

import (
	"context"

	"wildwatch/internal/adapters/events"
	"wildwatch/internal/adapters/messaging/twilio"
	"wildwatch/internal/adapters/push"
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	detdom "wildwatch/internal/services/detections/domain"
	"wildwatch/internal/services/notify/service"
	subdom "wildwatch/internal/services/subscribers/domain"
)

// Ports exposed by the notify module
type Ports struct {
	// Publisher is nil when the pipeline is disabled
	Publisher detdom.Publisher
	Twilio    *twilio.Client
	Push      *push.Sender
}

// Module owns the bus, the providers and the consumer router
type Module struct {
	opts  Options
	bus   *events.Bus
	svc   *service.Service
	ports Ports
	ready chan struct{}
}

type recipients struct {
	subdom.DirectoryPort
	subdom.GatePort
}

// New builds the providers from TWILIO_* and PUSH_* and the pipeline over a fresh bus
func New(deps modkit.Deps, dir subdom.DirectoryPort, gate subdom.GatePort) *Module {
	o := FromConfig(deps.Cfg)
	log := logger.Named("notify")

	tw := twilio.NewClient(twilio.OptionsFromEnv())
	// a nil *push.Sender reports unconfigured
	ps, err := push.New(push.OptionsFromEnv())
	if err != nil {
		log.Error().Err(err).Msg("push disabled")
	}

	bus := events.New(events.Options{Buffer: o.Buffer, Log: log})
	svc := service.New(bus, recipients{dir, gate}, tw, ps, deps.Now())

	m := &Module{opts: o, bus: bus, svc: svc, ports: Ports{Twilio: tw, Push: ps}, ready: make(chan struct{})}
	if o.Enabled {
		m.ports.Publisher = svc
	}
	log.Info().
		Bool("enabled", o.Enabled).
		Bool("sms", tw.IsConfigured()).
		Bool("whatsapp", tw.WhatsAppConfigured()).
		Bool("push", ps.IsConfigured()).
		Msg("notify pipeline configured")
	return m
}

// Ready is closed once the consumers are subscribed, or at once when the pipeline is disabled.
// The bus does not buffer for absent subscribers, so nothing should publish before Ready
func (m *Module) Ready() <-chan struct{} { return m.ready }

// Run consumes events until ctx is done, then closes the bus
func (m *Module) Run(ctx context.Context) error {
	defer m.bus.Close()
	if !m.opts.Enabled {
		close(m.ready)
		<-ctx.Done()
		return nil
	}

	cfg := events.DefaultRouterConfig()
	cfg.RetryMaxRetries = m.opts.MaxRetries
	cfg.RetryInitialInterval = m.opts.RetryInterval
	router, err := events.NewRouter(cfg, m.bus.Logger())
	if err != nil {
		return err
	}
	m.svc.Register(router, m.bus.Subscriber())
	go func() {
		select {
		case <-router.Running():
			close(m.ready)
		case <-ctx.Done():
		}
	}()

	if err := router.Run(ctx); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "notify router stopped")
	}
	return nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "notify" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
