// Package api provides the HTTP API for the application
package api

import (
	"time"

	"wildwatch/internal/platform/config"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/platform/metrics"
	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/platform/net/middleware"
	"wildwatch/internal/platform/store"

	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/modkit/module"
	"wildwatch/internal/modkit/swaggerkit"

	authmod "wildwatch/internal/services/api/auth/module"
	apidet "wildwatch/internal/services/api/detections/module"
	generalmod "wildwatch/internal/services/api/general/module"
	metahttp "wildwatch/internal/services/api/meta/http"
	metamod "wildwatch/internal/services/api/meta/module"
	notifapi "wildwatch/internal/services/api/notifications/module"
	uploadmod "wildwatch/internal/services/api/upload/module"
	usersmod "wildwatch/internal/services/api/users/module"
	webhookmod "wildwatch/internal/services/api/webhook/module"

	detectionsmod "wildwatch/internal/services/detections/module"
	notifymod "wildwatch/internal/services/notify/module"
	subscribersmod "wildwatch/internal/services/subscribers/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts every module onto r and returns the notify pipeline, which the caller must Run
func Mount(r phttp.Router, opt Options) *notifymod.Module {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	c := opt.Config.Prefix("CORE_API_")

	// service modules first; API modules only see their ports
	subscribers := subscribersmod.New(deps)
	sp := module.MustPortsOf[subscribersmod.Ports](subscribers)

	notify := notifymod.New(deps, sp.Directory, sp.Gate)
	np := module.MustPortsOf[notifymod.Ports](notify)

	detections := detectionsmod.New(deps, np.Publisher)
	dp := module.MustPortsOf[detectionsmod.Ports](detections)

	mods := []module.Module{
		subscribers,
		notify,
		detections,
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			Providers: map[string]metahttp.Configured{"twilio": np.Twilio, "push": np.Push},
		})),
		authmod.New(deps),
		webhookmod.New(deps, modkit.WithPorts(webhookmod.Ports{Ingest: dp.Ingest})),
		apidet.New(deps, modkit.WithPorts(apidet.Ports{Query: dp.Query})),
		generalmod.New(deps, modkit.WithPorts(generalmod.Ports{Registration: sp.Registration, Directory: sp.Directory})),
		usersmod.New(deps, modkit.WithPorts(usersmod.Ports{Directory: sp.Directory})),
		notifapi.New(deps, modkit.WithPorts(notifapi.Ports{Messenger: np.Twilio, Directory: sp.Directory})),
		uploadmod.New(deps),
	}

	cors := middleware.CORSOptions{
		AllowedOrigins:   c.MayCSV("CORS_ORIGINS", nil),
		AllowCredentials: c.MayBool("CORS_CREDENTIALS", false),
		MaxAge:           300,
	}
	r.Use(httpkit.CommonStack(cors, c.MayDuration("REQUEST_TIMEOUT", 60*time.Second))...)

	r.Handle("/metrics", metrics.Handler())
	swaggerkit.Mount(r, opt.EnableSwagger)

	for _, m := range mods {
		// register each module's ports under its own name for cross-module lookups
		module.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}
	logger.Named("api").Info().Strs("modules", module.Names()).Msg("modules mounted")
	return notify
}
