// Package service implements detection ingestion and the dashboard read models
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"wildwatch/internal/core/species"
	"wildwatch/internal/modkit/repokit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/platform/metrics"
	ptime "wildwatch/internal/platform/time"
	dom "wildwatch/internal/services/detections/domain"
	"wildwatch/internal/services/detections/repo"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config for the detections service
type Config struct {
	// Location sets day and month boundaries
	Location        *time.Location
	DefaultPageSize int
	MaxPageSize     int
	OverviewMonths  int
}

// Service implements domain.IngestPort and domain.QueryPort
type Service struct {
	db    repokit.TxRunner
	repo  repo.Repo
	pub   dom.Publisher
	clock ptime.Clock
	cfg   Config
}

// Option customises the Service
type Option func(*Service)

// WithPublisher announces stored detections; without one ingestion only persists
func WithPublisher(p dom.Publisher) Option { return func(s *Service) { s.pub = p } }

// WithClock overrides the wall clock
func WithClock(c ptime.Clock) Option { return func(s *Service) { s.clock = c } }

// WithConfig overrides the defaults
func WithConfig(cfg Config) Option { return func(s *Service) { s.cfg = cfg } }

var (
	_ dom.IngestPort = (*Service)(nil)
	_ dom.QueryPort  = (*Service)(nil)
)

// New constructs the service over db using binder
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Service {
	if db == nil {
		panic("detections.service: nil TxRunner")
	}
	if binder == nil {
		panic("detections.service: nil binder")
	}
	s := &Service{db: db, repo: binder.Bind(db), clock: ptime.System{}}
	for _, o := range opts {
		o(s)
	}
	if s.cfg.Location == nil {
		s.cfg.Location = time.UTC
	}
	if s.cfg.DefaultPageSize <= 0 {
		s.cfg.DefaultPageSize = 20
	}
	if s.cfg.MaxPageSize <= 0 {
		s.cfg.MaxPageSize = 500
	}
	if s.cfg.OverviewMonths <= 0 {
		s.cfg.OverviewMonths = 12
	}
	return s
}

// Ingest normalises and stores one detection, then publishes it in the background.
// The caller never waits on downstream consumers
func (s *Service) Ingest(ctx context.Context, in dom.NewRecord) (dom.Record, error) {
	in.DetectionID = strings.TrimSpace(in.DetectionID)
	if in.DetectionID == "" {
		in.DetectionID = uuid.NewString()
	}
	in.FormattedTime = strings.TrimSpace(in.FormattedTime)
	in.ClassName = species.Normalize(in.ClassName)

	rec, err := s.repo.Insert(ctx, in)
	switch {
	case perr.IsCode(err, perr.ErrorCodeDuplicateKey):
		metrics.DetectionsIngested.WithLabelValues("duplicate").Inc()
		return dom.Record{}, perr.WithOp(err, "detections.ingest")
	case err != nil:
		metrics.DetectionsIngested.WithLabelValues("failed").Inc()
		return dom.Record{}, perr.WithOp(err, "detections.ingest")
	}
	metrics.DetectionsIngested.WithLabelValues("stored").Inc()

	if s.pub != nil {
		pctx := logger.WithDetection(context.WithoutCancel(ctx), rec.DetectionID)
		go func() {
			if err := s.pub.PublishDetection(pctx, rec); err != nil {
				logger.C(pctx).Warn().Err(err).Msg("publish detection failed")
			}
		}()
	}
	return rec, nil
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Totals implements domain.QueryPort
func (s *Service) Totals(ctx context.Context) (dom.Totals, error) {
	now := s.clock.Now().In(s.cfg.Location)
	since, until := ptime.DayBounds(now, s.cfg.Location)

	var (
		total int64
		avg   dom.Average
		top   []dom.ClassStat
		today []dom.ClassStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.repo.Count(gctx, dom.Filter{})
		return err
	})
	g.Go(func() (err error) {
		avg, err = s.repo.Average(gctx, dom.Filter{})
		return err
	})
	g.Go(func() (err error) {
		top, err = s.repo.GroupByClass(gctx, dom.Filter{}, 1)
		return err
	})
	g.Go(func() (err error) {
		today, err = s.repo.GroupByClass(gctx, dom.Filter{Since: &since, Until: &until}, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return dom.Totals{}, perr.WithOp(err, "detections.totals")
	}

	out := dom.Totals{
		TotalDetections: dom.CountStat{Count: total, Message: fmt.Sprintf("Total detections: %d", total)},
		AverageConfidence: dom.AverageStat{
			AverageConfidence: round(avg.Mean, 4),
			TotalDetections:   avg.Count,
			Message:           "No detections found",
		},
		MostDetectedAnimal: dom.TopAnimalStat{Message: "No detections found"},
	}
	if avg.Count > 0 {
		out.AverageConfidence.Message = fmt.Sprintf("Average confidence: %s across %d detections",
			formatFloat(out.AverageConfidence.AverageConfidence), avg.Count)
	}
	if len(top) > 0 {
		name := top[0].ClassName
		out.MostDetectedAnimal = dom.TopAnimalStat{
			MostDetectedAnimal: &name,
			DetectionCount:     top[0].Count,
			AverageConfidence:  round(top[0].AvgConfidence, 4),
			Message:            fmt.Sprintf("Most detected: %s (%d detections)", name, top[0].Count),
		}
	}

	breakdown := make([]dom.SpeciesCount, 0, len(today))
	var todayTotal int64
	for _, c := range today {
		todayTotal += c.Count
		breakdown = append(breakdown, dom.SpeciesCount{
			Species:           c.ClassName,
			Count:             c.Count,
			AverageConfidence: round(c.AvgConfidence, 4),
		})
	}
	out.TodayDetections = dom.TodayStat{
		Date:                 now.Format("Mon Jan 02 2006"),
		TotalDetectionsToday: todayTotal,
		AnimalBreakdown:      breakdown,
		Message:              fmt.Sprintf("Today's detections: %d", todayTotal),
	}
	return out, nil
}

// formatFloat renders the shortest decimal form, 0.85 rather than 0.8500
func formatFloat(v float64) string { return fmt.Sprintf("%g", v) }

// Overview implements domain.QueryPort
func (s *Service) Overview(ctx context.Context) (dom.Overview, error) {
	var (
		buckets []dom.MonthBucket
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		buckets, err = s.repo.Monthly(gctx, s.cfg.Location.String(), s.cfg.OverviewMonths)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.repo.Count(gctx, dom.Filter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return dom.Overview{}, perr.WithOp(err, "detections.overview")
	}

	points := make([]dom.MonthPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, dom.MonthPoint{
			Month:           fmt.Sprintf("%s %d", time.Month(b.Month).String()[:3], b.Year),
			TotalDetections: b.Count,
			MonthNumber:     b.Month,
			Year:            b.Year,
		})
	}
	return dom.Overview{
		MonthlyData: points,
		Summary:     dom.OverviewSummary{TotalDetections: total, MonthsIncluded: len(points)},
	}, nil
}

// Breakdown implements domain.QueryPort
func (s *Service) Breakdown(ctx context.Context) ([]dom.BreakdownRow, error) {
	groups, err := s.repo.GroupByClass(ctx, dom.Filter{}, 0)
	if err != nil {
		return nil, perr.WithOp(err, "detections.breakdown")
	}
	var total int64
	for _, g := range groups {
		total += g.Count
	}
	out := make([]dom.BreakdownRow, 0, len(groups))
	for _, g := range groups {
		row := dom.BreakdownRow{Animal: g.ClassName, TotalDetections: g.Count}
		if total > 0 {
			row.Percentage = round(float64(g.Count)/float64(total)*100, 2)
		}
		out = append(out, row)
	}
	return out, nil
}

// Data implements domain.QueryPort
func (s *Service) Data(ctx context.Context) ([]dom.DataRow, error) {
	recs, err := s.repo.Find(ctx, dom.Filter{}, dom.DefaultSort, 0, 0)
	if err != nil {
		return nil, perr.WithOp(err, "detections.data")
	}
	out := make([]dom.DataRow, 0, len(recs))
	for _, r := range recs {
		out = append(out, dom.DataRow{
			DetectionID:   r.DetectionID,
			FormattedTime: r.FormattedTime,
			ClassName:     r.ClassName,
			Confidence:    r.Confidence,
		})
	}
	return out, nil
}

// List implements domain.QueryPort
func (s *Service) List(ctx context.Context, q dom.ListQuery) (dom.ListPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = s.cfg.DefaultPageSize
	}
	if q.PageSize > s.cfg.MaxPageSize {
		q.PageSize = s.cfg.MaxPageSize
	}
	if q.Sort.Column == "" {
		q.Sort = dom.DefaultSort
	}
	f := dom.Filter{Search: q.Search}

	var (
		recs  []dom.Record
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		recs, err = s.repo.Find(gctx, f, q.Sort, (q.Page-1)*q.PageSize, q.PageSize)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.repo.Count(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return dom.ListPage{}, perr.WithOp(err, "detections.list")
	}
	return dom.ListPage{
		Detections: recs,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: int((total + int64(q.PageSize) - 1) / int64(q.PageSize)),
	}, nil
}
