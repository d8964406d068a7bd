package roster

import (
	"fmt"

	"github.com/tradeling/roster-api-go/pkg/models"
)

// SetAssignment applies a manual single-cell override to a generated grid
// and recomputes that day's shift/skill headcounts and shortage flag. The
// assignment is marked IsManual; later generation runs copy locked days
// verbatim and therefore never silently overwrite it.
func SetAssignment(grid []models.Day, dayIndex int, agentName string, a models.Assignment,
	agents []models.Agent, shifts []models.ShiftDefinition, rules models.RuleSet) error {

	if dayIndex < 0 || dayIndex >= len(grid) {
		return fmt.Errorf("day index %d out of range", dayIndex)
	}
	day := &grid[dayIndex]
	if _, ok := day.Assignments[agentName]; !ok {
		return fmt.Errorf("agent %q has no assignment on %s", agentName, day.Date)
	}

	if a.Status == models.StatusWorking {
		if !shiftExists(shifts, a.ShiftID) {
			return fmt.Errorf("unknown shift %q", a.ShiftID)
		}
		if a.Task == "" {
			a.Task = models.TaskCalls
		}
	} else {
		a.ShiftID = ""
		a.Task = ""
	}
	a.IsManual = true
	day.Assignments[agentName] = a

	bilingualByName := make(map[string]bool, len(agents))
	for _, ag := range agents {
		bilingualByName[ag.Name] = ag.Bilingual
	}

	coverage := make(map[string]int, len(shifts))
	bilingual := make(map[string]int, len(shifts))
	total := 0
	for _, s := range shifts {
		coverage[s.ID] = 0
		bilingual[s.ID] = 0
	}
	for name, asgn := range day.Assignments {
		if asgn.Status != models.StatusWorking || asgn.ShiftID == "" {
			continue
		}
		coverage[asgn.ShiftID]++
		total++
		if bilingualByName[name] {
			bilingual[asgn.ShiftID]++
		}
	}

	shortage := false
	for _, s := range shifts {
		if coverage[s.ID] < rules[day.Weekday][s.ID].MinStaff {
			shortage = true
		}
	}

	day.ShiftCoverage = coverage
	day.BilingualCoverage = bilingual
	day.Total = total
	day.HasShortage = shortage
	return nil
}

func shiftExists(shifts []models.ShiftDefinition, id string) bool {
	for _, s := range shifts {
		if s.ID == id {
			return true
		}
	}
	return false
}
