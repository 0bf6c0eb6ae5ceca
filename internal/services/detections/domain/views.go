package domain

// CountStat is the total detections box
type CountStat struct {
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

// AverageStat is the average confidence box
type AverageStat struct {
	AverageConfidence float64 `json:"averageConfidence"`
	TotalDetections   int64   `json:"totalDetections"`
	Message           string  `json:"message"`
}

// TopAnimalStat is the most detected animal box; MostDetectedAnimal is null when there are no records
type TopAnimalStat struct {
	MostDetectedAnimal *string `json:"mostDetectedAnimal"`
	DetectionCount     int64   `json:"detectionCount"`
	AverageConfidence  float64 `json:"averageConfidence"`
	Message            string  `json:"message"`
}

// SpeciesCount is one row of today's breakdown
type SpeciesCount struct {
	Species           string  `json:"species"`
	Count             int64   `json:"count"`
	AverageConfidence float64 `json:"averageConfidence"`
}

// TodayStat is the today box
type TodayStat struct {
	Date                 string         `json:"date"`
	TotalDetectionsToday int64          `json:"totalDetectionsToday"`
	AnimalBreakdown      []SpeciesCount `json:"animalBreakdown"`
	Message              string         `json:"message"`
}

// Totals is the stats-box payload
type Totals struct {
	TotalDetections    CountStat     `json:"totalDetections"`
	AverageConfidence  AverageStat   `json:"averageConfidence"`
	MostDetectedAnimal TopAnimalStat `json:"mostDetectedAnimal"`
	TodayDetections    TodayStat     `json:"todayDetections"`
}

// MonthPoint is one chart point of the overview
type MonthPoint struct {
	Month           string `json:"month"`
	TotalDetections int64  `json:"totalDetections"`
	MonthNumber     int    `json:"monthNumber"`
	Year            int    `json:"year"`
}

// OverviewSummary totals the overview
type OverviewSummary struct {
	TotalDetections int64 `json:"totalDetections"`
	MonthsIncluded  int   `json:"monthsIncluded"`
}

// Overview is the monthly chart payload
type Overview struct {
	MonthlyData []MonthPoint    `json:"monthlyData"`
	Summary     OverviewSummary `json:"summary"`
}

// BreakdownRow is one species share of all detections
type BreakdownRow struct {
	Animal          string  `json:"animal"`
	TotalDetections int64   `json:"totalDetections"`
	Percentage      float64 `json:"percentage"`
}

// DataRow is the flat export row
type DataRow struct {
	DetectionID   string  `json:"detection_id"`
	FormattedTime string  `json:"formatted_time"`
	ClassName     string  `json:"class_name"`
	Confidence    float64 `json:"confidence"`
}

// ListQuery is the paginated list request
type ListQuery struct {
	Page     int
	PageSize int
	Sort     Sort
	Search   string
}

// ListPage is the paginated list payload
type ListPage struct {
	Detections []Record `json:"detections"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}
