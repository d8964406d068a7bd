package roster

import (
	"time"

	"github.com/tradeling/roster-api-go/pkg/models"
)

// resolveContinuity determines the day-zero counters feeding the daily fill.
//
// Priority order:
//   - second_half with a first-half grid covering through the split date:
//     counters start at zero and are rebuilt by replaying the locked days.
//   - caller-supplied ContinuityState (previous month's persisted final
//     state, forwarded by the persistence layer).
//   - caller-supplied manual history grid, reconstructed here.
//   - month starting at or before the project start date: clean start.
//   - anything else: ErrContinuityUnknown.
func (g *generator) resolveContinuity(in *models.RosterInput) (models.ContinuityState, error) {
	if g.cfg.Scope == models.ScopeSecondHalf {
		if g.firstHalfCoversSplit(in.FirstHalf) {
			g.lockedDays = indexByDate(in.FirstHalf)
			return zeroState(g.agents), nil
		}
		if in.Continuity != nil {
			return in.Continuity, nil
		}
		if in.History != nil {
			return StateFromHistory(g.agents, in.History, in.HistoryDates)
		}
		return nil, ErrContinuityUnknown
	}

	if in.Continuity != nil {
		return in.Continuity, nil
	}
	if in.History != nil {
		return StateFromHistory(g.agents, in.History, in.HistoryDates)
	}

	if g.cfg.ProjectStartDate != "" {
		start, err := time.Parse("2006-01-02", g.cfg.ProjectStartDate)
		monthStart := time.Date(g.year, g.month, 1, 0, 0, 0, 0, time.UTC)
		if err == nil && monthStart.After(start) {
			// Some earlier period should exist but nothing was supplied.
			return nil, ErrContinuityUnknown
		}
	}
	return zeroState(g.agents), nil
}

// StateFromHistory reconstructs per-agent counters from an operator-entered
// working/off grid covering the days immediately preceding the generation
// window. The consecutive streak scans backward from the most recent day
// until a non-working day is hit; the weekly count covers the days since
// the last Monday in the window, or the whole window when it holds none.
func StateFromHistory(agents []models.Agent, history models.HistoryGrid, dates []string) (models.ContinuityState, error) {
	if len(history) == 0 || len(dates) == 0 {
		return nil, ErrMissingContinuityInput
	}

	mondayIdx := -1
	for i, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, ErrMissingContinuityInput
		}
		if t.Weekday() == time.Monday {
			mondayIdx = i
		}
	}

	state := make(models.ContinuityState, len(agents))
	for _, a := range agents {
		row, ok := history[a.Name]
		if !ok || len(row) != len(dates) {
			return nil, ErrMissingContinuityInput
		}

		streak := 0
		for i := len(row) - 1; i >= 0; i-- {
			if !row[i] {
				break
			}
			streak++
		}

		weekly := 0
		from := 0
		if mondayIdx >= 0 {
			from = mondayIdx
		}
		for i := from; i < len(row); i++ {
			if row[i] {
				weekly++
			}
		}

		state[a.Name] = models.AgentState{Consecutive: streak, Weekly: weekly}
	}
	return state, nil
}

// firstHalfCoversSplit reports whether a previously generated grid reaches
// through the split date of the target month.
func (g *generator) firstHalfCoversSplit(grid []models.Day) bool {
	if len(grid) == 0 {
		return false
	}
	want := isoDate(time.Date(g.year, g.month, g.cfg.SplitDate, 0, 0, 0, 0, time.UTC))
	for _, d := range grid {
		if d.Date == want {
			return true
		}
	}
	return false
}

func indexByDate(grid []models.Day) map[string]models.Day {
	byDate := make(map[string]models.Day, len(grid))
	for _, d := range grid {
		byDate[d.Date] = d
	}
	return byDate
}

func zeroState(agents []models.Agent) models.ContinuityState {
	state := make(models.ContinuityState, len(agents))
	for _, a := range agents {
		state[a.Name] = models.AgentState{}
	}
	return state
}
