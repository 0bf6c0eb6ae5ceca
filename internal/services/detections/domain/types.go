// Package domain defines the detection record and the read models derived from it
package domain

import (
	"strings"
	"time"

	perr "wildwatch/internal/platform/errors"
)

// Record is one stored detection. Records are append-only
type Record struct {
	DetectionID   string    `json:"detection_id"`
	FormattedTime string    `json:"formatted_time"`
	ClassName     string    `json:"class_name"`
	Confidence    float64   `json:"confidence"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewRecord is the insert shape; timestamps are set by the store
type NewRecord struct {
	DetectionID   string
	FormattedTime string
	ClassName     string
	Confidence    float64
}

// Validate checks required fields and the confidence range
func (n NewRecord) Validate() error {
	var missing []string
	if strings.TrimSpace(n.DetectionID) == "" {
		missing = append(missing, "detection_id")
	}
	if strings.TrimSpace(n.FormattedTime) == "" {
		missing = append(missing, "formatted_time")
	}
	if strings.TrimSpace(n.ClassName) == "" {
		missing = append(missing, "class_name")
	}
	if len(missing) > 0 {
		return perr.WithFields(perr.Validationf("missing required detection fields"), missing...)
	}
	if n.Confidence < 0 || n.Confidence > 1 {
		return perr.WithField(perr.Validationf("confidence must be between 0 and 1"), "confidence")
	}
	return nil
}

// Filter narrows reads. Zero value matches everything
type Filter struct {
	// Search is a literal, case-insensitive substring over detection_id, class_name, formatted_time
	Search string
	// Since and Until bound created_at as [Since, Until)
	Since *time.Time
	Until *time.Time
}

// Sort orders Find results
type Sort struct {
	Column string
	Asc    bool
}

// DefaultSort is newest first
var DefaultSort = Sort{Column: "created_at"}

// sortable maps accepted client field names to columns
var sortable = map[string]string{
	"createdAt":      "created_at",
	"created_at":     "created_at",
	"detectionId":    "detection_id",
	"detection_id":   "detection_id",
	"className":      "class_name",
	"class_name":     "class_name",
	"formattedTime":  "formatted_time",
	"formatted_time": "formatted_time",
	"confidence":     "confidence",
}

// SortColumn resolves a client sort field to a column; ok is false for anything off the list
func SortColumn(field string) (string, bool) {
	c, ok := sortable[strings.TrimSpace(field)]
	return c, ok
}

// Average is the mean confidence over N records
type Average struct {
	Mean  float64
	Count int64
}

// ClassStat is one class_name group
type ClassStat struct {
	ClassName     string
	Count         int64
	AvgConfidence float64
}

// MonthBucket counts records in one calendar month of the configured zone
type MonthBucket struct {
	Year  int
	Month int
	Count int64
}
