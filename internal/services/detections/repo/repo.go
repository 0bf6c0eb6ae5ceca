// Package repo provides the detections repository implementation
package repo

import (
	"context"
	"strconv"
	"strings"

	"wildwatch/internal/core/search"
	"wildwatch/internal/modkit/repokit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/store"
	"wildwatch/internal/services/detections/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Repo { return &pg{q: q} }

// Repo is the detection store. Reads are side-effect free
type Repo interface {
	Insert(ctx context.Context, in domain.NewRecord) (domain.Record, error)
	Count(ctx context.Context, f domain.Filter) (int64, error)
	Find(ctx context.Context, f domain.Filter, s domain.Sort, skip, limit int) ([]domain.Record, error)
	Average(ctx context.Context, f domain.Filter) (domain.Average, error)
	// GroupByClass returns class groups by count descending; limit <= 0 returns all
	GroupByClass(ctx context.Context, f domain.Filter, limit int) ([]domain.ClassStat, error)
	// Monthly returns the most recent limit month buckets in zone, oldest first
	Monthly(ctx context.Context, zone string, limit int) ([]domain.MonthBucket, error)
}

const recordCols = `detection_id, formatted_time, class_name, confidence, created_at, updated_at`

func scanRecord(r store.Row) (domain.Record, error) {
	var d domain.Record
	err := r.Scan(&d.DetectionID, &d.FormattedTime, &d.ClassName, &d.Confidence, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// Insert implements Repo
func (s *pg) Insert(ctx context.Context, in domain.NewRecord) (domain.Record, error) {
	if err := in.Validate(); err != nil {
		return domain.Record{}, err
	}
	rec, err := store.One(ctx, s.q, scanRecord, `
		INSERT INTO detections (detection_id, formatted_time, class_name, confidence)
		VALUES ($1, $2, $3, $4)
		RETURNING `+recordCols,
		in.DetectionID, in.FormattedTime, in.ClassName, in.Confidence,
	)
	if err != nil {
		return domain.Record{}, perr.FromPostgresWithField(err, "insert detection")
	}
	return rec, nil
}

// where renders the filter; placeholders continue from len(args)
func where(f domain.Filter, args []any) (string, []any) {
	var conds []string
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if pat := search.Contains(f.Search); pat != "" {
		p := next(pat)
		conds = append(conds, `(detection_id ILIKE `+p+` ESCAPE '\' OR class_name ILIKE `+p+` ESCAPE '\' OR formatted_time ILIKE `+p+` ESCAPE '\')`)
	}
	if f.Since != nil {
		conds = append(conds, `created_at >= `+next(*f.Since))
	}
	if f.Until != nil {
		conds = append(conds, `created_at < `+next(*f.Until))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderBy renders a whitelisted ORDER BY; id breaks ties so paging is stable
func orderBy(s domain.Sort) string {
	col := domain.DefaultSort.Column
	switch s.Column {
	case "created_at", "detection_id", "class_name", "formatted_time", "confidence":
		col = s.Column
	}
	dir := " DESC"
	if s.Asc {
		dir = " ASC"
	}
	return " ORDER BY " + col + dir + ", id" + dir
}

// Count implements Repo
func (s *pg) Count(ctx context.Context, f domain.Filter) (int64, error) {
	w, args := where(f, nil)
	n, err := store.Scalar[int64](ctx, s.q, `SELECT count(*) FROM detections`+w, args...)
	if err != nil {
		return 0, perr.FromPostgres(err, "count detections")
	}
	return n, nil
}

// Find implements Repo
func (s *pg) Find(ctx context.Context, f domain.Filter, srt domain.Sort, skip, limit int) ([]domain.Record, error) {
	w, args := where(f, nil)
	var sb strings.Builder
	sb.WriteString(`SELECT ` + recordCols + ` FROM detections`)
	sb.WriteString(w)
	sb.WriteString(orderBy(srt))
	if skip > 0 {
		args = append(args, skip)
		sb.WriteString(` OFFSET $` + strconv.Itoa(len(args)))
	}
	if limit > 0 {
		args = append(args, limit)
		sb.WriteString(` LIMIT $` + strconv.Itoa(len(args)))
	}
	out, err := store.Many(ctx, s.q, scanRecord, sb.String(), args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "find detections")
	}
	return out, nil
}

// Average implements Repo
func (s *pg) Average(ctx context.Context, f domain.Filter) (domain.Average, error) {
	w, args := where(f, nil)
	var a domain.Average
	err := s.q.QueryRow(ctx, `SELECT coalesce(avg(confidence), 0)::float8, count(*) FROM detections`+w, args...).
		Scan(&a.Mean, &a.Count)
	if err != nil {
		return domain.Average{}, perr.FromPostgres(err, "average confidence")
	}
	return a, nil
}

// GroupByClass implements Repo
func (s *pg) GroupByClass(ctx context.Context, f domain.Filter, limit int) ([]domain.ClassStat, error) {
	w, args := where(f, nil)
	sql := `SELECT class_name, count(*), avg(confidence)::float8 FROM detections` + w +
		` GROUP BY class_name ORDER BY count(*) DESC, class_name`
	if limit > 0 {
		args = append(args, limit)
		sql += ` LIMIT $` + strconv.Itoa(len(args))
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.ClassStat, error) {
		var c domain.ClassStat
		err := r.Scan(&c.ClassName, &c.Count, &c.AvgConfidence)
		return c, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "group detections by class")
	}
	return out, nil
}

// Monthly implements Repo
func (s *pg) Monthly(ctx context.Context, zone string, limit int) ([]domain.MonthBucket, error) {
	if zone == "" {
		zone = "UTC"
	}
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.MonthBucket, error) {
		var b domain.MonthBucket
		err := r.Scan(&b.Year, &b.Month, &b.Count)
		return b, err
	}, `
		SELECT y, m, n FROM (
			SELECT extract(year FROM created_at AT TIME ZONE $1)::int AS y,
			       extract(month FROM created_at AT TIME ZONE $1)::int AS m,
			       count(*) AS n
			FROM detections
			GROUP BY 1, 2
			ORDER BY 1 DESC, 2 DESC
			LIMIT $2
		) recent
		ORDER BY y, m`, zone, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "monthly detections")
	}
	return out, nil
}
