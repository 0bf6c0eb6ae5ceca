package modkit

import (
	"net/http"

	"wildwatch/internal/modkit/httpkit"
	str "wildwatch/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	Register func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Base implements Module on top of Built; modules embed it and set Routes
type Base struct {
	Built

	// Routes registers the module's own endpoints on its prefixed router
	Routes func(httpkit.Router)
	// Exported is what Ports returns
	Exported any
}

// NewBase builds options over the given defaults
func NewBase(name, prefix string, opts ...Option) Base {
	b := Build(append([]Option{WithName(name), WithPrefix(prefix)}, opts...)...)
	return Base{Built: b}
}

// MountRoutes mounts the module under its prefix with its middlewares
func (m *Base) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.Mw {
			rr.Use(mw)
		}
		if m.Routes != nil {
			m.Routes(rr)
		}
		m.Register(rr)
	}
	if m.Prefix == "" || m.Prefix == "/" {
		r.Group(mount)
		return
	}
	r.Route(str.MustPrefix(m.Prefix), mount)
}

// Name returns the module name
func (m *Base) Name() string { return str.MustString(m.Built.Name, "module name") }

// Ports returns the exported port set
func (m *Base) Ports() any { return m.Exported }

// Middlewares returns the module middlewares
func (m *Base) Middlewares() []func(http.Handler) http.Handler { return m.Mw }
