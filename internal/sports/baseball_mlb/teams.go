package baseball_mlb

// MLB team abbreviation mappings
var teamAbbreviations = map[string]string{
	"Arizona Diamondbacks":  "ARI",
	"Athletics":             "ATH",
	"Atlanta Braves":        "ATL",
	"Baltimore Orioles":     "BAL",
	"Boston Red Sox":        "BOS",
	"Chicago Cubs":          "CHC",
	"Chicago White Sox":     "CHW",
	"Cincinnati Reds":       "CIN",
	"Cleveland Guardians":   "CLE",
	"Colorado Rockies":      "COL",
	"Detroit Tigers":        "DET",
	"Houston Astros":        "HOU",
	"Kansas City Royals":    "KC",
	"Los Angeles Angels":    "LAA",
	"Los Angeles Dodgers":   "LAD",
	"Miami Marlins":         "MIA",
	"Milwaukee Brewers":     "MIL",
	"Minnesota Twins":       "MIN",
	"New York Mets":         "NYM",
	"New York Yankees":      "NYY",
	"Philadelphia Phillies": "PHI",
	"Pittsburgh Pirates":    "PIT",
	"San Diego Padres":      "SD",
	"San Francisco Giants":  "SF",
	"Seattle Mariners":      "SEA",
	"St. Louis Cardinals":   "STL",
	"Tampa Bay Rays":        "TB",
	"Texas Rangers":         "TEX",
	"Toronto Blue Jays":     "TOR",
	"Washington Nationals":  "WSH",
}

// Reverse mapping for lookups
var abbreviationToName = map[string]string{}

func init() {
	for name, abbr := range teamAbbreviations {
		abbreviationToName[abbr] = name
	}
}

// GetTeamAbbreviation returns the abbreviation for a full team name
func GetTeamAbbreviation(fullName string) string {
	if abbr, ok := teamAbbreviations[fullName]; ok {
		return abbr
	}
	return fullName
}

// GetTeamName returns the full name for an abbreviation
func GetTeamName(abbr string) string {
	if name, ok := abbreviationToName[abbr]; ok {
		return name
	}
	return abbr
}
