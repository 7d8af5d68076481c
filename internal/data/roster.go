package data

import (
	"math"

	"github.com/apnea-signal/energy-model/internal/model"
)

// Roster column names in the STA personal-best sheet.
const (
	rosterNameColumn = "Name"
	rosterStaColumn  = "STA"
)

// LoadRoster reads the STA reference sheet into a normalized-name -> seconds
// lookup. Entries with unparsable or non-positive times are dropped; the
// caller decides whether an empty roster is fatal.
func LoadRoster(path string) (map[string]float64, error) {
	table, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	if err := table.EnsureColumns(rosterNameColumn, rosterStaColumn); err != nil {
		return nil, err
	}

	lookup := make(map[string]float64, len(table.Rows))
	for _, row := range table.Rows {
		name := model.NormalizeName(row.Get(rosterNameColumn))
		seconds := model.ParseTimeSeconds(row.Get(rosterStaColumn))
		if name == "" || math.IsNaN(seconds) || seconds <= 0 {
			continue
		}
		lookup[name] = seconds
	}
	return lookup, nil
}
