package models

import "time"

// Category identifies which analytics pipeline produced a trend
type Category string

const (
	CategoryBetting Category = "betting"
	CategoryPlayer  Category = "player"
	CategoryTeam    Category = "team"
	CategoryInjury  Category = "injury"
)

// Severity is the coarse tier used to rank trends in the aggregated feed
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank maps severity to a sortable integer (higher = more severe)
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// Trend holds the fields shared by every analytics record.
// A trend is immutable once produced: each aggregation cycle
// builds a fresh generation rather than mutating the last one.
type Trend struct {
	ID          string    `json:"id"`
	SportKey    string    `json:"sport_key"`
	Category    Category  `json:"category"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	IsLive      bool      `json:"is_live"`
}

// TrendRecord is implemented by every concrete trend type so the
// aggregator can sort and filter a mixed-category list.
type TrendRecord interface {
	// Base returns the shared trend fields
	Base() *Trend

	// SecondaryKey is the within-severity tie-break, sorted descending.
	// Player trends use their best prop confidence; everything else
	// uses the record timestamp.
	SecondaryKey() float64
}

// Base implements TrendRecord for types embedding Trend
func (t *Trend) Base() *Trend { return t }

// SecondaryKey defaults to timestamp ordering (newest first)
func (t *Trend) SecondaryKey() float64 {
	return float64(t.Timestamp.UnixMilli())
}
