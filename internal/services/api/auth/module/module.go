// Package module mounts operator login under /api/auth
package module

import (
	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/platform/net/middleware"
	"wildwatch/internal/services/api/auth/domain"
	"wildwatch/internal/services/api/auth/service"

	authhttp "wildwatch/internal/services/api/auth/http"
)

// Ports exposed by the auth module
type Ports struct {
	Authenticator domain.Authenticator
	Verifier      middleware.TokenVerifier
}

// Module implements modkit.Module
type Module struct{ modkit.Base }

type authenticator interface {
	domain.Authenticator
	middleware.TokenVerifier
}

// New builds the authenticator from AUTH_*; without an operator account every login is refused
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	m := &Module{Base: modkit.NewBase("api.auth", "/api/auth", opts...)}

	var a authenticator = service.Disabled{}
	if o.Username != "" || o.PasswordHash != "" || o.Secret != "" {
		svc, err := service.New(service.Config{
			Username:     o.Username,
			PasswordHash: o.PasswordHash,
			Secret:       []byte(o.Secret),
			TTL:          o.TTL,
		}, deps.Now())
		if err != nil {
			logger.Named("auth").Error().Err(err).Msg("auth misconfigured; login disabled")
		} else {
			a = svc
		}
	}

	m.Exported = Ports{Authenticator: a, Verifier: a}
	m.Routes = func(r httpkit.Router) {
		authhttp.Register(r, authhttp.Deps{Auth: a, Verifier: a, LoginLimit: o.LoginLimit})
	}
	return m
}
