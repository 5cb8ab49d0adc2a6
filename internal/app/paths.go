package service

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SafeName turns a person's name into a file name component: every run of
// characters outside [A-Za-z0-9_-] becomes "_", and leading or trailing "_"
// and "." are trimmed. An empty result becomes "unnamed".
func SafeName(name string) string {
	s := unsafeRun.ReplaceAllString(name, "_")
	s = strings.Trim(s, "_.")
	if s == "" {
		return "unnamed"
	}
	return s
}

// Layout places chart files under an output root.
type Layout struct {
	Root string
}

// Scatter is the path of the biplot of all people.
func (l Layout) Scatter() string {
	return filepath.Join(l.Root, "scatter", "scatter_chart_all.png")
}

// Individual is the path of a single person's radar chart.
func (l Layout) Individual(name string) string {
	return filepath.Join(l.Root, "radar", "individual", "radar_chart_"+SafeName(name)+".png")
}

// VersusTeam is the path of a person compared against the team average.
func (l Layout) VersusTeam(name string) string {
	return filepath.Join(l.Root, "radar", "team", "radar_chart_comparison_"+SafeName(name)+"_vs_TeamAvg.png")
}

// TeamAverage is the path of the team average radar chart.
func (l Layout) TeamAverage() string {
	return filepath.Join(l.Root, "radar", "team", "radar_chart_team_average.png")
}

// Pair is the path of the comparison of two people.
func (l Layout) Pair(a, b string) string {
	return filepath.Join(l.Root, "radar", "pairs", "radar_chart_comparison_"+SafeName(a)+"_"+SafeName(b)+".png")
}
