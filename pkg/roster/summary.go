package roster

import (
	"math"

	"github.com/tradeling/roster-api-go/pkg/models"
)

// Summarize aggregates shortage/health metrics over a generated grid.
// Only day records belonging to the target month count.
func Summarize(grid []models.Day, shiftCount int) models.Summary {
	total := 0
	critical := 0
	for _, d := range grid {
		if !d.IsCurrentMonth {
			continue
		}
		total++
		if d.HasShortage {
			critical++
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(100 * float64(total-critical) / float64(total)))
	}

	return models.Summary{
		HealthScore:     score,
		TotalDays:       total,
		OptimalDays:     total - critical,
		CriticalDays:    critical,
		TotalShiftSlots: total * shiftCount,
	}
}
