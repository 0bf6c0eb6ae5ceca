// Package repotest provides an in-memory detections repo for service and handler tests
package repotest

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"wildwatch/internal/core/search"
	"wildwatch/internal/modkit/repokit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/services/detections/domain"
	"wildwatch/internal/services/detections/repo"
)

// Memory is a goroutine-safe Repo over a slice
type Memory struct {
	mu   sync.Mutex
	recs []domain.Record
	seq  int

	// Now stamps inserted records; time.Now when nil
	Now func() time.Time
	// Err, when set, fails every call
	Err error
}

// NewMemory returns an empty Memory
func NewMemory() *Memory { return &Memory{} }

// Binder binds every Queryer to m
func (m *Memory) Binder() repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
}

// Seed inserts a record verbatim, timestamps included
func (m *Memory) Seed(r domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, r)
}

// Len reports the stored count
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}

// Insert implements repo.Repo
func (m *Memory) Insert(_ context.Context, in domain.NewRecord) (domain.Record, error) {
	if m.Err != nil {
		return domain.Record{}, m.Err
	}
	if err := in.Validate(); err != nil {
		return domain.Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.DetectionID == in.DetectionID {
			return domain.Record{}, perr.WithField(perr.DuplicateKeyf("detection already exists"), "detection_id")
		}
	}
	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	// keep insertion order observable when the clock is frozen
	m.seq++
	now = now.Add(time.Duration(m.seq) * time.Microsecond)
	r := domain.Record{
		DetectionID:   in.DetectionID,
		FormattedTime: in.FormattedTime,
		ClassName:     in.ClassName,
		Confidence:    in.Confidence,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.recs = append(m.recs, r)
	return r, nil
}

func (m *Memory) match(f domain.Filter) []domain.Record {
	term := strings.ToLower(search.Term(f.Search))
	out := make([]domain.Record, 0, len(m.recs))
	for _, r := range m.recs {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.DetectionID), term) &&
			!strings.Contains(strings.ToLower(r.ClassName), term) &&
			!strings.Contains(strings.ToLower(r.FormattedTime), term) {
			continue
		}
		if f.Since != nil && r.CreatedAt.Before(*f.Since) {
			continue
		}
		if f.Until != nil && !r.CreatedAt.Before(*f.Until) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Count implements repo.Repo
func (m *Memory) Count(_ context.Context, f domain.Filter) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.match(f))), nil
}

func compareBy(col string, a, b domain.Record) int {
	switch col {
	case "detection_id":
		return cmp.Compare(a.DetectionID, b.DetectionID)
	case "class_name":
		return cmp.Compare(a.ClassName, b.ClassName)
	case "formatted_time":
		return cmp.Compare(a.FormattedTime, b.FormattedTime)
	case "confidence":
		return cmp.Compare(a.Confidence, b.Confidence)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// Find implements repo.Repo
func (m *Memory) Find(_ context.Context, f domain.Filter, s domain.Sort, skip, limit int) ([]domain.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := m.match(f)
	slices.SortStableFunc(rs, func(a, b domain.Record) int {
		c := compareBy(s.Column, a, b)
		if !s.Asc {
			c = -c
		}
		return c
	})
	if skip > len(rs) {
		skip = len(rs)
	}
	rs = rs[skip:]
	if limit > 0 && limit < len(rs) {
		rs = rs[:limit]
	}
	return rs, nil
}

// Average implements repo.Repo
func (m *Memory) Average(_ context.Context, f domain.Filter) (domain.Average, error) {
	if m.Err != nil {
		return domain.Average{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := m.match(f)
	if len(rs) == 0 {
		return domain.Average{}, nil
	}
	var sum float64
	for _, r := range rs {
		sum += r.Confidence
	}
	return domain.Average{Mean: sum / float64(len(rs)), Count: int64(len(rs))}, nil
}

// GroupByClass implements repo.Repo
func (m *Memory) GroupByClass(_ context.Context, f domain.Filter, limit int) ([]domain.ClassStat, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := map[string]int{}
	var out []domain.ClassStat
	sums := map[string]float64{}
	for _, r := range m.match(f) {
		i, ok := idx[r.ClassName]
		if !ok {
			i = len(out)
			idx[r.ClassName] = i
			out = append(out, domain.ClassStat{ClassName: r.ClassName})
		}
		out[i].Count++
		sums[r.ClassName] += r.Confidence
	}
	for i := range out {
		out[i].AvgConfidence = sums[out[i].ClassName] / float64(out[i].Count)
	}
	slices.SortFunc(out, func(a, b domain.ClassStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.ClassName, b.ClassName)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	if out == nil {
		out = []domain.ClassStat{}
	}
	return out, nil
}

// Monthly implements repo.Repo
func (m *Memory) Monthly(_ context.Context, zone string, limit int) ([]domain.MonthBucket, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	loc, err := time.LoadLocation(cmp.Or(zone, "UTC"))
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[[2]int]int64{}
	for _, r := range m.recs {
		t := r.CreatedAt.In(loc)
		counts[[2]int{t.Year(), int(t.Month())}]++
	}
	out := make([]domain.MonthBucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.MonthBucket{Year: k[0], Month: k[1], Count: n})
	}
	slices.SortFunc(out, func(a, b domain.MonthBucket) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Month, b.Month))
	})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

var _ repo.Repo = (*Memory)(nil)
