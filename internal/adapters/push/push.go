// Package push delivers pop-up notifications through shoutrrr service URLs (ntfy, gotify, telegram...)
package push

import (
	"context"
	"io"
	stdlog "log"
	"time"

	"wildwatch/internal/platform/config"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
)

const defaultTimeout = 10 * time.Second

// Options configures the Sender
type Options struct {
	URLs    []string
	Timeout time.Duration
}

// OptionsFromEnv reads PUSH_URLS and PUSH_TIMEOUT
func OptionsFromEnv() Options {
	c := config.New().Prefix("PUSH_")
	return Options{
		URLs:    c.MayCSV("URLS", nil),
		Timeout: c.MayDuration("TIMEOUT", defaultTimeout),
	}
}

// Sender fans a message out to every configured service
type Sender struct {
	router *router.ServiceRouter
	count  int
	log    logger.Logger
}

// New builds a Sender; with no URLs the Sender is valid but unconfigured
func New(o Options) (*Sender, error) {
	s := &Sender{log: *logger.Named("push")}
	if len(o.URLs) == 0 {
		return s, nil
	}
	r, err := shoutrrr.CreateSender(o.URLs...)
	if err != nil {
		// the raw error may echo tokens embedded in the URL
		return nil, perr.Newf(perr.ErrorCodeValidation, "invalid push service url (%d configured)", len(o.URLs))
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	r.Timeout = o.Timeout
	r.SetLogger(stdlog.New(io.Discard, "", 0))
	s.router, s.count = r, len(o.URLs)
	return s, nil
}

// IsConfigured reports whether at least one service URL is set
func (s *Sender) IsConfigured() bool { return s != nil && s.router != nil }

// Send delivers title and body to all services; the first failure is returned
func (s *Sender) Send(ctx context.Context, title, body string) error {
	if !s.IsConfigured() {
		return perr.Upstreamf("push notifications are not configured")
	}
	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "push send cancelled")
	}

	params := stypes.Params{}
	if title != "" {
		params.SetTitle(title)
	}
	failed := 0
	var first error
	for _, err := range s.router.Send(body, &params) {
		if err == nil {
			continue
		}
		failed++
		if first == nil {
			first = err
		}
	}
	if first != nil {
		s.log.Warn().Int("failed", failed).Int("services", s.count).Msg("push delivery failed")
		return perr.Wrapf(first, perr.ErrorCodeUnavailable, "push delivery failed for %d of %d services", failed, s.count)
	}
	return nil
}
