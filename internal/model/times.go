package model

import (
	"math"
	"strconv"
	"strings"
)

// ParseTimeSeconds converts a time string ("1:23:45", "1:30", "95", "95.5")
// into seconds. Missing or placeholder values ("", "-") return NaN so callers
// can filter them out without special-casing; malformed segments also return
// NaN rather than an error because competition sheets are full of them.
func ParseTimeSeconds(value string) float64 {
	text := strings.TrimSpace(value)
	if text == "" || text == "-" {
		return math.NaN()
	}
	parts := strings.Split(text, ":")
	seconds := 0.0
	multiplier := 1.0
	for i := len(parts) - 1; i >= 0; i-- {
		part, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return math.NaN()
		}
		seconds += part * multiplier
		multiplier *= 60.0
	}
	return seconds
}

// CoerceFloat parses a numeric cell, mapping empty/placeholder/garbage
// values to NaN.
func CoerceFloat(value string) float64 {
	text := strings.TrimSpace(value)
	if text == "" || text == "-" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// FormatSeconds renders seconds as "M:SS" for display next to raw split
// values. Non-finite input renders as the sheet placeholder.
func FormatSeconds(totalSeconds float64) string {
	if !isFinite(totalSeconds) {
		return "-"
	}
	minutes := int(totalSeconds / 60)
	seconds := int(math.Round(math.Mod(totalSeconds, 60)))
	if seconds == 60 {
		minutes++
		seconds = 0
	}
	return strconv.Itoa(minutes) + ":" + pad2(seconds)
}

// NormalizeName canonicalizes an athlete name for lookups: trimmed and
// lowercased. Roster and attempt sheets disagree on casing and whitespace.
func NormalizeName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
