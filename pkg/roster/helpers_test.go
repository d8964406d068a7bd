package roster

import (
	"fmt"

	"github.com/tradeling/roster-api-go/pkg/models"
)

func testShifts() []models.ShiftDefinition {
	return []models.ShiftDefinition{
		{ID: "am", Name: "Morning", Start: "09:00", End: "18:00", Color: "orange"},
		{ID: "pm", Name: "Evening", Start: "13:00", End: "22:00", Color: "blue"},
	}
}

func testRules(weekdayMin, weekendMin int) models.RuleSet {
	rules := make(models.RuleSet)
	for _, day := range models.Weekdays {
		min := weekdayMin
		if day == "Saturday" || day == "Sunday" {
			min = weekendMin
		}
		rules[day] = map[string]models.StaffingRule{
			"am": {MinStaff: min, Calls: 2, Chats: 1},
			"pm": {MinStaff: min, Calls: 2, Chats: 1},
		}
	}
	return rules
}

func testAgents(n int) []models.Agent {
	prefs := [][2][]string{
		{{"Saturday", "Sunday"}, {"Friday", "Saturday"}},
		{{"Sunday", "Monday"}, {"Monday", "Tuesday"}},
		{{"Tuesday", "Wednesday"}, {"Wednesday", "Thursday"}},
		{{"Thursday", "Friday"}, {"Friday", "Saturday"}},
	}
	shiftIDs := []string{"am", "pm", models.ShiftFlexible}

	agents := make([]models.Agent, n)
	for i := range agents {
		p := prefs[i%len(prefs)]
		agents[i] = models.Agent{
			Name:              fmt.Sprintf("Agent %02d", i+1),
			ShiftID:           shiftIDs[i%len(shiftIDs)],
			PreferredDaysOff1: p[0],
			PreferredDaysOff2: p[1],
		}
	}
	return agents
}

// baseInput targets June 2026, which starts on a Monday, with a fixed seed
// and a project start that makes it the very first generated period.
func baseInput(agentCount int) models.RosterInput {
	return models.RosterInput{
		Agents: testAgents(agentCount),
		Shifts: testShifts(),
		Rules:  testRules(4, 3),
		Config: models.GenerationConfig{
			ProjectStartDate:   "2026-06-01",
			MaxConsecutiveDays: 5,
			SplitDate:          15,
			Scope:              models.ScopeFull,
			Seed:               1,
		},
		Year:  2026,
		Month: 6,
	}
}
