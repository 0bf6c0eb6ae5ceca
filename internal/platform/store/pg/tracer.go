package pg

import (
	"context"
	"strings"

	"wildwatch/internal/platform/logger"
	"wildwatch/internal/platform/metrics"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives every statement the adapter runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements through zerolog and records latency.
// verbose prints every statement; otherwise only slow or failed ones
func Tracer(root logger.Logger, verbose bool) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: ll, verbose: verbose}
}

type zlTracer struct {
	log     logger.Logger
	verbose bool
}

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	sql := compact(ev.SQL)
	metrics.DBQueryDuration.WithLabelValues(Verb(sql)).Observe(float64(ev.ElapsedUS) / 1e6)

	var evt *zerolog.Event
	switch {
	case ev.Err != nil:
		evt = z.log.Error().Err(ev.Err)
	case ev.Slow:
		evt = z.log.Warn()
	case z.verbose:
		evt = z.log.Info()
	default:
		return
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", sql).
		Int("args", len(ev.Args)).
		Msg("pg query")
}

// Verb returns the lowercased leading keyword of a statement ("select", "insert", "with")
func Verb(sql string) string {
	s := strings.TrimSpace(sql)
	if i := strings.IndexAny(s, " \n\t("); i > 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
