// Package module mounts video upload and the uploads file server
package module

import (
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"

	uploadhttp "wildwatch/internal/services/api/upload/http"
)

// Module implements modkit.Module
type Module struct{ modkit.Base }

// New constructs the module; it mounts at the root since it owns two prefixes
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	m := &Module{Base: modkit.NewBase("api.upload", "", opts...)}
	m.Routes = func(r httpkit.Router) {
		uploadhttp.Register(r, uploadhttp.Config{Dir: o.Dir, MaxBytes: o.MaxBytes})
	}
	return m
}
