package pipeline

import (
	"fmt"
	"math"

	"github.com/apnea-signal/energy-model/internal/data"
	"github.com/apnea-signal/energy-model/internal/model"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// loadRosterLenient loads the STA roster, degrading to an empty lookup with
// a warning when the sheet is missing or unreadable. Stages that can work
// without budgets use this; the oxygen fit uses loadRosterStrict.
func (p *Pipeline) loadRosterLenient() map[string]float64 {
	roster, err := data.LoadRoster(p.cfg.RosterFile)
	if err != nil {
		p.log.Warn("roster unavailable", "path", p.cfg.RosterFile, "error", err)
		return map[string]float64{}
	}
	return roster
}

// loadRosterStrict loads the STA roster and fails when it is missing or
// empty. The oxygen fit is meaningless without budgets.
func (p *Pipeline) loadRosterStrict() (map[string]float64, error) {
	roster, err := data.LoadRoster(p.cfg.RosterFile)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("roster %s has no usable entries", p.cfg.RosterFile)
	}
	return roster, nil
}

// loadMovementArtifact reads the intensity artifact back in. Missing is
// tolerated (stages fall back to default intensities) and returns nil.
func (p *Pipeline) loadMovementArtifact() map[string]model.MovementDataset {
	payload := map[string]model.MovementDataset{}
	if err := data.ReadJSON(p.ArtifactPath(ArtifactMovement), &payload); err != nil {
		p.log.Warn("movement intensity artifact unavailable", "error", err)
		return nil
	}
	return payload
}

// movementLookup flattens one dataset's athletes into a normalized-name map.
func movementLookup(dataset model.MovementDataset) map[string]model.MovementAthlete {
	lookup := make(map[string]model.MovementAthlete, len(dataset.Athletes))
	for _, a := range dataset.Athletes {
		lookup[model.NormalizeName(a.Name)] = a
	}
	return lookup
}
