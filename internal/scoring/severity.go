package scoring

import (
	"math"
	"strings"

	"github.com/XavierBriggs/vantage/pkg/models"
)

// InjurySeverity combines the reported status with the computed impact
// score. Pure function of (status, impact); thresholds are fixed and
// severity never decreases as impact rises within one status.
func InjurySeverity(status models.InjuryStatus, impact float64) models.Severity {
	switch status {
	case models.InjuryOut:
		switch {
		case impact >= 70:
			return models.SeverityCritical
		case impact >= 40:
			return models.SeverityHigh
		default:
			return models.SeverityMedium
		}
	case models.InjuryDoubtful:
		switch {
		case impact >= 60:
			return models.SeverityHigh
		case impact >= 30:
			return models.SeverityMedium
		default:
			return models.SeverityLow
		}
	case models.InjuryQuestionable:
		switch {
		case impact >= 80:
			return models.SeverityHigh
		case impact >= 45:
			return models.SeverityMedium
		default:
			return models.SeverityLow
		}
	default: // probable, day-to-day
		if impact >= 80 {
			return models.SeverityMedium
		}
		return models.SeverityLow
	}
}

// StreakSeverity tiers a player or team trend by how far current form
// deviates from the baseline, in percent
func StreakSeverity(percentChange float64) models.Severity {
	dev := math.Abs(percentChange)
	switch {
	case dev >= 50:
		return models.SeverityCritical
	case dev >= 30:
		return models.SeverityHigh
	case dev >= 15:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// MovementSeverity tiers a betting trend by line movement magnitude.
// Steam moves are always at least high severity.
func MovementSeverity(spreadMove, totalMove float64, steam bool) models.Severity {
	move := math.Abs(spreadMove) + math.Abs(totalMove)*0.5
	switch {
	case steam && move >= 3:
		return models.SeverityCritical
	case steam || move >= 2.5:
		return models.SeverityHigh
	case move >= 1:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// NormalizeInjuryStatus maps provider status strings onto the model enum
func NormalizeInjuryStatus(raw string) models.InjuryStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "out", "injured reserve", "ir":
		return models.InjuryOut
	case "doubtful":
		return models.InjuryDoubtful
	case "questionable", "game time decision":
		return models.InjuryQuestionable
	case "probable":
		return models.InjuryProbable
	default:
		return models.InjuryDayToDay
	}
}
