package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wildwatch/internal/modkit/repokit/nopdb"
	perr "wildwatch/internal/platform/errors"
	ptime "wildwatch/internal/platform/time"
	kit "wildwatch/internal/platform/testkit"
	dom "wildwatch/internal/services/detections/domain"
	"wildwatch/internal/services/detections/repo/repotest"
)

var noon = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

type chanPublisher chan dom.Record

func (c chanPublisher) PublishDetection(_ context.Context, r dom.Record) error {
	c <- r
	return nil
}

func newSvc(t *testing.T, opts ...Option) (*Service, *repotest.Memory) {
	t.Helper()
	mem := repotest.NewMemory()
	mem.Now = func() time.Time { return noon }
	opts = append([]Option{WithClock(ptime.Fixed{T: noon})}, opts...)
	return New(nopdb.New(), mem.Binder(), opts...), mem
}

func seed(m *repotest.Memory, id, class string, conf float64, at time.Time) {
	m.Seed(dom.Record{DetectionID: id, ClassName: class, FormattedTime: at.Format(time.RFC3339), Confidence: conf, CreatedAt: at, UpdatedAt: at})
}

func TestNewPanicsOnNil(t *testing.T) {
	kit.MustPanic(t, func() { New(nil, repotest.NewMemory().Binder()) })
	kit.MustPanic(t, func() { New(nopdb.New(), nil) })
}

func TestIngestStoresAndPublishes(t *testing.T) {
	pub := make(chanPublisher, 1)
	s, mem := newSvc(t, WithPublisher(pub))

	rec, err := s.Ingest(context.Background(), dom.NewRecord{
		DetectionID: "d-1", ClassName: "  Red   Fox ", FormattedTime: "2025-03-14 12:00", Confidence: 0.9,
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if rec.ClassName != "Red Fox" || mem.Len() != 1 {
		t.Fatalf("stored %+v, len %d", rec, mem.Len())
	}
	select {
	case got := <-pub:
		if got.DetectionID != "d-1" {
			t.Fatalf("published %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("detection was not published")
	}
}

func TestIngestGeneratesMissingID(t *testing.T) {
	s, _ := newSvc(t)
	rec, err := s.Ingest(context.Background(), dom.NewRecord{ClassName: "owl", FormattedTime: "now", Confidence: 0})
	if err != nil || len(rec.DetectionID) != 36 {
		t.Fatalf("Ingest = %+v, %v", rec, err)
	}
}

func TestIngestDuplicateLeavesOneRecord(t *testing.T) {
	pub := make(chanPublisher, 2)
	s, mem := newSvc(t, WithPublisher(pub))
	in := dom.NewRecord{DetectionID: "dup", ClassName: "deer", FormattedTime: "t", Confidence: 0.5}
	if _, err := s.Ingest(context.Background(), in); err != nil {
		t.Fatalf("first Ingest: %v", err)
	}
	_, err := s.Ingest(context.Background(), in)
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("second Ingest err = %v", err)
	}
	if mem.Len() != 1 {
		t.Fatalf("len = %d", mem.Len())
	}
	<-pub
	select {
	case r := <-pub:
		t.Fatalf("duplicate should not publish, got %+v", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestIngestRejectsOutOfRangeConfidence(t *testing.T) {
	s, _ := newSvc(t)
	_, err := s.Ingest(context.Background(), dom.NewRecord{DetectionID: "x", ClassName: "deer", FormattedTime: "t", Confidence: 1.2})
	if e, ok := perr.As(err); !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != "confidence" {
		t.Fatalf("err = %v", err)
	}
}

func TestTotals(t *testing.T) {
	s, mem := newSvc(t)
	yesterday := noon.Add(-24 * time.Hour)
	seed(mem, "1", "fox", 0.9, noon.Add(-time.Hour))
	seed(mem, "2", "fox", 0.8, noon.Add(-2*time.Hour))
	seed(mem, "3", "owl", 0.7, noon.Add(-3*time.Hour))
	seed(mem, "4", "fox", 0.6, yesterday)

	got, err := s.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got.TotalDetections.Count != 4 || got.TotalDetections.Message != "Total detections: 4" {
		t.Fatalf("total = %+v", got.TotalDetections)
	}
	if got.AverageConfidence.AverageConfidence != 0.75 || got.AverageConfidence.Message != "Average confidence: 0.75 across 4 detections" {
		t.Fatalf("average = %+v", got.AverageConfidence)
	}
	top := got.MostDetectedAnimal
	if top.MostDetectedAnimal == nil || *top.MostDetectedAnimal != "fox" || top.DetectionCount != 3 || top.AverageConfidence != 0.7667 {
		t.Fatalf("top = %+v", top)
	}
	today := got.TodayDetections
	if today.TotalDetectionsToday != 3 || len(today.AnimalBreakdown) != 2 || today.Date != "Fri Mar 14 2025" {
		t.Fatalf("today = %+v", today)
	}
	if today.AnimalBreakdown[0].Species != "fox" || today.AnimalBreakdown[0].Count != 2 || today.AnimalBreakdown[0].AverageConfidence != 0.85 {
		t.Fatalf("breakdown = %+v", today.AnimalBreakdown)
	}
}

func TestTotalsEmpty(t *testing.T) {
	s, _ := newSvc(t)
	got, err := s.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got.MostDetectedAnimal.MostDetectedAnimal != nil || got.MostDetectedAnimal.Message != "No detections found" {
		t.Fatalf("top = %+v", got.MostDetectedAnimal)
	}
	if got.AverageConfidence.Message != "No detections found" || got.TodayDetections.AnimalBreakdown == nil {
		t.Fatalf("empty totals = %+v", got)
	}
}

func TestTotalsUsesLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	s, mem := newSvc(t, WithConfig(Config{Location: loc}))
	// 23:30 UTC the day before is 01:30 local on the same day as noon
	seed(mem, "1", "fox", 0.5, time.Date(2025, time.March, 13, 23, 30, 0, 0, time.UTC))
	seed(mem, "2", "fox", 0.5, time.Date(2025, time.March, 13, 21, 30, 0, 0, time.UTC))

	got, err := s.Totals(context.Background())
	if err != nil || got.TodayDetections.TotalDetectionsToday != 1 {
		t.Fatalf("today = %+v, %v", got.TodayDetections, err)
	}
}

func TestTotalsPropagatesStoreFault(t *testing.T) {
	s, mem := newSvc(t)
	mem.Err = perr.DBf("connection reset")
	if _, err := s.Totals(context.Background()); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("err = %v", err)
	}
}

func TestOverview(t *testing.T) {
	s, mem := newSvc(t)
	start := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	for i := range 14 {
		seed(mem, string(rune('a'+i)), "fox", 0.5, start.AddDate(0, i, 0))
	}
	seed(mem, "extra", "owl", 0.5, start.AddDate(0, 13, 1))

	got, err := s.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(got.MonthlyData) != 12 || got.Summary.MonthsIncluded != 12 || got.Summary.TotalDetections != 15 {
		t.Fatalf("overview = %+v", got.Summary)
	}
	first, last := got.MonthlyData[0], got.MonthlyData[11]
	if first.Month != "Mar 2024" || first.MonthNumber != 3 || first.Year != 2024 {
		t.Fatalf("first = %+v", first)
	}
	if last.Month != "Feb 2025" || last.TotalDetections != 2 {
		t.Fatalf("last = %+v", last)
	}
}

func TestBreakdown(t *testing.T) {
	s, mem := newSvc(t)
	seed(mem, "1", "fox", 0.5, noon)
	seed(mem, "2", "fox", 0.5, noon)
	seed(mem, "3", "owl", 0.5, noon)

	got, err := s.Breakdown(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("Breakdown = %+v, %v", got, err)
	}
	if got[0].Animal != "fox" || got[0].Percentage != 66.67 || got[1].Percentage != 33.33 {
		t.Fatalf("rows = %+v", got)
	}

	empty, _ := newSvc(t)
	rows, err := empty.Breakdown(context.Background())
	if err != nil || rows == nil || len(rows) != 0 {
		t.Fatalf("empty Breakdown = %#v, %v", rows, err)
	}
}

func TestDataNewestFirst(t *testing.T) {
	s, mem := newSvc(t)
	seed(mem, "old", "fox", 0.5, noon.Add(-time.Hour))
	seed(mem, "new", "owl", 0.5, noon)

	got, err := s.Data(context.Background())
	if err != nil || len(got) != 2 || got[0].DetectionID != "new" {
		t.Fatalf("Data = %+v, %v", got, err)
	}
}

func TestListPagingSortAndSearch(t *testing.T) {
	s, mem := newSvc(t)
	for i, c := range []string{"fox", "owl", "fox", "deer", "fox"} {
		seed(mem, string(rune('a'+i)), c, float64(i)/10, noon.Add(time.Duration(i)*time.Minute))
	}

	page, err := s.List(context.Background(), dom.ListQuery{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || len(page.Detections) != 2 || page.Detections[0].DetectionID != "c" {
		t.Fatalf("page = %+v", page)
	}

	page, _ = s.List(context.Background(), dom.ListQuery{Sort: dom.Sort{Column: "confidence", Asc: true}, Search: "FO"})
	if page.Total != 3 || page.PageSize != 20 || page.Detections[0].DetectionID != "a" {
		t.Fatalf("searched page = %+v", page)
	}

	page, _ = s.List(context.Background(), dom.ListQuery{Page: 9, PageSize: 2})
	if len(page.Detections) != 0 || page.Total != 5 {
		t.Fatalf("past-the-end page = %+v", page)
	}

	page, _ = s.List(context.Background(), dom.ListQuery{PageSize: 10_000})
	if page.PageSize != 500 {
		t.Fatalf("pageSize should clamp, got %d", page.PageSize)
	}
}

func TestListStoreFault(t *testing.T) {
	s, mem := newSvc(t)
	mem.Err = errors.New("boom")
	if _, err := s.List(context.Background(), dom.ListQuery{}); err == nil {
		t.Fatalf("expected error")
	}
}
