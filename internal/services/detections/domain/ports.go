package domain

import "context"

// IngestPort accepts detections from the inference process
type IngestPort interface {
	Ingest(ctx context.Context, in NewRecord) (Record, error)
}

// QueryPort serves the dashboard views
type QueryPort interface {
	Totals(ctx context.Context) (Totals, error)
	Overview(ctx context.Context) (Overview, error)
	Breakdown(ctx context.Context) ([]BreakdownRow, error)
	Data(ctx context.Context) ([]DataRow, error)
	List(ctx context.Context, q ListQuery) (ListPage, error)
}

// Publisher announces stored detections to downstream consumers
type Publisher interface {
	PublishDetection(ctx context.Context, r Record) error
}
