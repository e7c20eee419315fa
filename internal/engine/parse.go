package engine

import (
	"math"
	"strconv"
	"strings"
)

// --- TOLERANT CELL COERCION ---
// Source CSVs carry numbers as display text: "62.2%", "4,77,822", "NA", "".
// These helpers never error; a false ok drops the cell from whichever
// statistic asked for it, and nothing else.

// parsePercent parses "62.2%" (or a bare "62.2") into 62.2.
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseGroupedInt parses comma-grouped counts like "4,77,822".
// Indian-style grouping, so just strip every comma.
func parseGroupedInt(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
