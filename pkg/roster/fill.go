package roster

import (
	"fmt"
	"time"

	"github.com/tradeling/roster-api-go/pkg/models"
)

// buildDay produces one Day record, or nothing when the generation scope
// excludes the date. Counters are updated for every emitted day, including
// locked ones replayed from a first-half grid.
func (g *generator) buildDay(date time.Time, plan *weekPlan) (models.Day, bool) {
	inMonth := date.Year() == g.year && date.Month() == g.month

	// The two halves split on a date boundary so that a first-half grid and
	// a second-half regeneration cover the padded weeks exactly once
	// between them.
	if g.cfg.Scope == models.ScopeFirstHalf && date.After(g.splitBoundary) {
		return models.Day{}, false
	}

	if g.cfg.Scope == models.ScopeSecondHalf && !date.After(g.splitBoundary) {
		if g.lockedDays == nil {
			// Resumed from manually supplied continuity: there is nothing
			// trustworthy to emit for the locked zone, and assignments are
			// never fabricated for it.
			return models.Day{}, false
		}
		day, ok := g.lockedDays[isoDate(date)]
		if !ok {
			g.warnf("%s: first-half grid has no record for this day, skipped", date.Format("Jan 02"))
			return models.Day{}, false
		}
		day.IsLocked = true
		g.replayCounters(day)
		return day, true
	}

	return g.fillDay(date, plan, inMonth), true
}

// fillDay runs the daily pipeline: availability and fatigue filters, shift
// bucketing, bilingual rebalancing, task assignment, counter updates, and
// coverage bookkeeping.
func (g *generator) fillDay(date time.Time, plan *weekPlan, inMonth bool) models.Day {
	weekday := weekdayName(date)
	rules := g.rules[weekday]
	label := date.Format("Jan 02")

	var eligible []models.Agent
	for _, a := range g.agents {
		if plan.isOff(a.Name, weekday) {
			continue
		}
		if g.weekly[a.Name] >= maxWeeklyDays || g.consecutive[a.Name] >= g.cfg.MaxConsecutiveDays {
			continue
		}
		eligible = append(eligible, a)
	}

	buckets := g.bucketShifts(eligible, rules)
	g.rebalanceBilingual(buckets)

	assignments := make(map[string]models.Assignment, len(g.agents))
	coverage := make(map[string]int, len(buckets))
	bilingual := make(map[string]int, len(buckets))
	total := 0
	shortage := false

	for _, b := range buckets {
		tasks := g.assignTasks(b.agents, b.rule)
		for _, a := range b.agents {
			assignments[a.Name] = models.Assignment{
				Status:  models.StatusWorking,
				ShiftID: b.def.ID,
				Task:    tasks[a.Name],
			}
			g.weekly[a.Name]++
			g.consecutive[a.Name]++
		}

		coverage[b.def.ID] = len(b.agents)
		bilingual[b.def.ID] = b.bilingualCount()
		total += len(b.agents)

		if len(b.agents) < b.rule.MinStaff {
			shortage = true
			g.warnf("%s (%s): short staffed (%d/%d)", label, b.def.Name, len(b.agents), b.rule.MinStaff)
		}
		if g.hasBilingual && b.bilingualCount() == 0 {
			g.warnf("%s (%s): no bilingual coverage", label, b.def.Name)
		}
	}

	for _, a := range g.agents {
		if _, ok := assignments[a.Name]; ok {
			continue
		}
		status := models.StatusOff
		if g.pto[a.Name][isoDate(date)] {
			status = models.StatusPTO
		}
		assignments[a.Name] = models.Assignment{Status: status}
		g.consecutive[a.Name] = 0
	}

	return models.Day{
		Date:              isoDate(date),
		Weekday:           weekday,
		IsCurrentMonth:    inMonth,
		Assignments:       assignments,
		ShiftCoverage:     coverage,
		BilingualCoverage: bilingual,
		Total:             total,
		HasShortage:       shortage,
	}
}

// assignTasks builds a demand-weighted task pool for one shift and zips it
// against the working agents. The pool starts from the rule's targets and
// is padded with weighted random draws (60% calls, 30% chats, 10% tickets)
// until it covers the headcount; excess entries are discarded.
func (g *generator) assignTasks(agents []models.Agent, rule models.StaffingRule) map[string]string {
	pool := make([]string, 0, len(agents))
	for i := 0; i < rule.Calls; i++ {
		pool = append(pool, models.TaskCalls)
	}
	for i := 0; i < rule.Chats; i++ {
		pool = append(pool, models.TaskChats)
	}
	for i := 0; i < rule.Tickets; i++ {
		pool = append(pool, models.TaskTickets)
	}
	for len(pool) < len(agents) {
		switch f := g.rng.Float64(); {
		case f < 0.6:
			pool = append(pool, models.TaskCalls)
		case f < 0.9:
			pool = append(pool, models.TaskChats)
		default:
			pool = append(pool, models.TaskTickets)
		}
	}

	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	order := make([]models.Agent, len(agents))
	copy(order, agents)
	g.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	tasks := make(map[string]string, len(order))
	for i, a := range order {
		tasks[a.Name] = pool[i]
	}
	return tasks
}

// replayCounters folds a locked day's assignments into the running
// counters so the regenerated half continues the real streaks.
func (g *generator) replayCounters(day models.Day) {
	for _, a := range g.agents {
		if day.Assignments[a.Name].Status == models.StatusWorking {
			g.weekly[a.Name]++
			g.consecutive[a.Name]++
		} else {
			g.consecutive[a.Name] = 0
		}
	}
}

func (g *generator) warnf(format string, args ...any) {
	g.warnings = append(g.warnings, fmt.Sprintf(format, args...))
}
