// @title         Wildwatch API
// @version       1.0
// @description   Wildlife camera detections, subscriber alerts and notification relay
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"wildwatch/internal/platform/config"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/platform/store"

	"wildwatch/internal/services/api"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		logger.Get().Error().Err(err).Msg("wildwatch-api stopped")
		os.Exit(1)
	}
	logger.Get().Info().Msg("wildwatch-api stopped")
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	// postgres from SERVICE_PGSQL_*, migrations run on open unless disabled
	st, err := store.Open(ctx, store.FromEnv("wildwatch-api"), store.WithLogger(*l))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "open store")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(root)

	notify := api.Mount(
		srv.Router(),
		api.Options{
			Config:        root,
			Store:         st,
			Logger:        l,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return notify.Run(gctx) })

	// the webhook publishes onto an in-process bus, so consumers subscribe before traffic is served
	select {
	case <-notify.Ready():
	case <-gctx.Done():
		return g.Wait()
	}
	g.Go(func() error { return srv.Run(gctx) })

	return g.Wait()
}
