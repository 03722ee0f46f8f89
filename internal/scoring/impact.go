// Package scoring computes impact scores, severity tiers and confidence
// values from normalized statistics. Everything here is a pure function
// of its inputs so the tiers the UI shows are reproducible.
package scoring

// Impact score bounds. A player never scores below ImpactMin: even a
// deep-bench player being ruled out is worth surfacing.
const (
	ImpactMin = 5.0
	ImpactMax = 100.0
)

// Offset added to position defaults when no statistics are available,
// so a clearly important position never scores as low-impact purely
// for lack of data.
const noStatsOffset = 20.0

// positionDefaults weight positions when statistics are absent
var positionDefaults = map[string]map[string]float64{
	"basketball_nba": {
		"PG": 40, "SG": 35, "SF": 35, "PF": 32, "C": 35, "G": 37, "F": 33,
	},
	"american_football_nfl": {
		"QB": 60, "RB": 40, "WR": 38, "TE": 30, "K": 15, "OL": 20,
		"DE": 28, "LB": 28, "CB": 30, "S": 26,
	},
	"baseball_mlb": {
		"SP": 55, "RP": 25, "C": 30, "1B": 30, "2B": 28, "3B": 30,
		"SS": 32, "LF": 28, "CF": 30, "RF": 28, "DH": 30,
	},
	"ice_hockey_nhl": {
		"G": 55, "C": 38, "LW": 32, "RW": 32, "D": 30,
	},
}

// ImpactScore maps a player's season statistics plus position to a
// bounded score. Each sport weights its own metrics; when no stats are
// available a position default plus fixed offset stands in for zero.
func ImpactScore(sportKey, position string, stats map[string]float64) float64 {
	if len(stats) == 0 {
		return clampImpact(positionDefault(sportKey, position) + noStatsOffset)
	}

	var raw float64
	switch sportKey {
	case "basketball_nba":
		raw = basketballImpact(stats)
	case "american_football_nfl":
		raw = footballImpact(position, stats)
	case "baseball_mlb":
		raw = baseballImpact(position, stats)
	case "ice_hockey_nhl":
		raw = hockeyImpact(stats)
	default:
		raw = positionDefault(sportKey, position)
	}

	return clampImpact(raw)
}

// basketballImpact weights scoring, playmaking, rebounding, minutes and usage
func basketballImpact(stats map[string]float64) float64 {
	return stats["points"]*1.8 +
		stats["assists"]*1.5 +
		stats["rebounds"]*1.2 +
		stats["minutes"]*0.5 +
		stats["usageRate"]*0.8
}

// footballImpact splits quarterbacks from everyone else
func footballImpact(position string, stats map[string]float64) float64 {
	if position == "QB" {
		return stats["passingYards"]*0.15 +
			stats["passingTouchdowns"]*6 +
			stats["rushingYards"]*0.05
	}
	return (stats["rushingYards"]+stats["receivingYards"])*0.2 +
		stats["touchdowns"]*5
}

// baseballImpact weights contact, on-base plus slugging, and power.
// Pitchers go by workload and run prevention instead.
func baseballImpact(position string, stats map[string]float64) float64 {
	if position == "SP" || position == "RP" {
		score := stats["inningsPitched"] * 0.4
		if era := stats["ERA"]; era > 0 {
			score += 30 / era
		}
		return score
	}
	return stats["avg"]*100*0.4 +
		stats["OPS"]*50 +
		stats["homeRuns"]*0.8
}

// hockeyImpact weights production and ice time
func hockeyImpact(stats map[string]float64) float64 {
	return stats["goals"]*2 +
		stats["assists"]*1.5 +
		stats["timeOnIce"]*0.8
}

func positionDefault(sportKey, position string) float64 {
	if defaults, ok := positionDefaults[sportKey]; ok {
		if w, ok := defaults[position]; ok {
			return w
		}
	}
	return 25
}

func clampImpact(score float64) float64 {
	if score < ImpactMin {
		return ImpactMin
	}
	if score > ImpactMax {
		return ImpactMax
	}
	return score
}
