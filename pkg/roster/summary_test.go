package roster

import (
	"testing"

	"github.com/tradeling/roster-api-go/pkg/models"
)

func TestSummarize(t *testing.T) {
	grid := []models.Day{
		{IsCurrentMonth: true},
		{IsCurrentMonth: true, HasShortage: true},
		{IsCurrentMonth: true},
		{IsCurrentMonth: true},
		{IsCurrentMonth: false, HasShortage: true}, // padding day, ignored
	}

	sum := Summarize(grid, 2)

	if sum.TotalDays != 4 {
		t.Errorf("total days = %d, want 4", sum.TotalDays)
	}
	if sum.CriticalDays != 1 {
		t.Errorf("critical days = %d, want 1", sum.CriticalDays)
	}
	if sum.OptimalDays != 3 {
		t.Errorf("optimal days = %d, want 3", sum.OptimalDays)
	}
	if sum.HealthScore != 75 {
		t.Errorf("health score = %d, want 75", sum.HealthScore)
	}
	if sum.TotalShiftSlots != 8 {
		t.Errorf("shift slots = %d, want 8", sum.TotalShiftSlots)
	}
}

func TestSummarizeRounding(t *testing.T) {
	grid := make([]models.Day, 3)
	for i := range grid {
		grid[i].IsCurrentMonth = true
	}
	grid[0].HasShortage = true

	// 2 of 3 optimal rounds to 67, not truncating to 66.
	if got := Summarize(grid, 1).HealthScore; got != 67 {
		t.Errorf("health score = %d, want 67", got)
	}
}

func TestSummarizeEmptyGrid(t *testing.T) {
	sum := Summarize(nil, 2)
	if sum.HealthScore != 0 || sum.TotalDays != 0 || sum.TotalShiftSlots != 0 {
		t.Errorf("empty grid summary = %+v, want zeros", sum)
	}
}
