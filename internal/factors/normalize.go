// Package factors computes the named multiplicative adjustments applied on
// top of the model estimate. Every factor is neutral at 1.0 and degrades to
// neutral when its inputs are missing.
package factors

import (
	"sort"
	"strings"
)

// teamAliases maps common full names and legacy codes to canonical
// three-letter team codes. Lookup is case-insensitive.
var teamAliases = map[string]string{
	"ATLANTA HAWKS":          "ATL",
	"BOSTON CELTICS":         "BOS",
	"BROOKLYN NETS":          "BKN",
	"NEW JERSEY NETS":        "BKN",
	"CHARLOTTE HORNETS":      "CHA",
	"CHICAGO BULLS":          "CHI",
	"CLEVELAND CAVALIERS":    "CLE",
	"DALLAS MAVERICKS":       "DAL",
	"DENVER NUGGETS":         "DEN",
	"DETROIT PISTONS":        "DET",
	"GOLDEN STATE WARRIORS":  "GSW",
	"GS WARRIORS":            "GSW",
	"HOUSTON ROCKETS":        "HOU",
	"INDIANA PACERS":         "IND",
	"LA CLIPPERS":            "LAC",
	"LOS ANGELES CLIPPERS":   "LAC",
	"LOS ANGELES LAKERS":     "LAL",
	"LA LAKERS":              "LAL",
	"MEMPHIS GRIZZLIES":      "MEM",
	"MIAMI HEAT":             "MIA",
	"MILWAUKEE BUCKS":        "MIL",
	"MINNESOTA TIMBERWOLVES": "MIN",
	"NEW ORLEANS PELICANS":   "NOP",
	"NEW ORLEANS HORNETS":    "NOP",
	"NEW YORK KNICKS":        "NYK",
	"OKLAHOMA CITY THUNDER":  "OKC",
	"ORLANDO MAGIC":          "ORL",
	"PHILADELPHIA 76ERS":     "PHI",
	"PHOENIX SUNS":           "PHX",
	"PORTLAND TRAIL BLAZERS": "POR",
	"SACRAMENTO KINGS":       "SAC",
	"SAN ANTONIO SPURS":      "SAS",
	"TORONTO RAPTORS":        "TOR",
	"UTAH JAZZ":              "UTA",
	"WASHINGTON WIZARDS":     "WAS",
}

// NormalizeTeam resolves a team identifier to its canonical code. Inputs that
// already look like a code pass through uppercased; unknown names come back
// unchanged so callers can still use them as map keys.
func NormalizeTeam(name string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(name))
	if trimmed == "" {
		return ""
	}
	if canonical, ok := teamAliases[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// LeagueTeams returns the canonical three-letter codes of every team, sorted
func LeagueTeams() []string {
	seen := make(map[string]struct{}, len(teamAliases))
	for _, code := range teamAliases {
		seen[code] = struct{}{}
	}
	teams := make([]string, 0, len(seen))
	for code := range seen {
		teams = append(teams, code)
	}
	sort.Strings(teams)
	return teams
}

// SameTeam reports whether two identifiers resolve to the same canonical team
func SameTeam(a, b string) bool {
	return NormalizeTeam(a) == NormalizeTeam(b)
}
