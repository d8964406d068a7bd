package roster

import (
	"sort"
	"time"

	"github.com/tradeling/roster-api-go/pkg/models"
)

// bilingualRotation holds the four off-day pairs that bilingual agents
// cycle through (by declaration index mod 4) when the forced rotation is
// enabled. Spreading the pairs across the week keeps skill coverage from
// clustering on weekends.
var bilingualRotation = [4][2]string{
	{"Sunday", "Monday"},
	{"Tuesday", "Wednesday"},
	{"Thursday", "Friday"},
	{"Saturday", "Sunday"},
}

// weekPlan is the outcome of off-day allocation for one Monday-starting week.
type weekPlan struct {
	offs  map[string]map[string]bool // agent name -> weekday -> off
	tally map[string]int             // weekday -> agents already off
	slack map[string]int             // weekday -> max agents that can be off
}

func (p *weekPlan) isOff(agent, weekday string) bool {
	return p.offs[agent][weekday]
}

func (p *weekPlan) take(agent, weekday string) {
	if p.offs[agent] == nil {
		p.offs[agent] = make(map[string]bool)
	}
	if !p.offs[agent][weekday] {
		p.offs[agent][weekday] = true
		p.tally[weekday]++
	}
}

// planWeek allocates each agent's 0-2 off-days for one week: PTO first
// (always honored), then the forced rotation for bilingual agents, then
// preference pairs bounded by remaining staffing capacity, then the
// maximum-slack fallback.
func (g *generator) planWeek(week []time.Time) *weekPlan {
	plan := &weekPlan{
		offs:  make(map[string]map[string]bool, len(g.agents)),
		tally: make(map[string]int, 7),
		slack: make(map[string]int, 7),
	}

	// slack(day) = total agents minus the summed minimum staffing for that
	// weekday across all shifts.
	for _, date := range week {
		day := weekdayName(date)
		needed := 0
		for _, rule := range g.rules[day] {
			needed += rule.MinStaff
		}
		slack := len(g.agents) - needed
		if slack < 0 {
			slack = 0
		}
		plan.slack[day] = slack
	}

	// PTO wins unconditionally, no capacity check.
	for _, a := range g.agents {
		for _, date := range week {
			if g.pto[a.Name][isoDate(date)] {
				plan.take(a.Name, weekdayName(date))
			}
		}
	}

	order := make([]int, len(g.agents))
	for i := range order {
		order[i] = i
	}
	if g.cfg.ShuffleAllocation {
		g.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	for _, idx := range order {
		a := g.agents[idx]
		if len(plan.offs[a.Name]) >= 2 {
			continue
		}

		if a.Bilingual && !g.cfg.DisableBilingualRotation {
			for _, day := range bilingualRotation[idx%4] {
				if len(plan.offs[a.Name]) >= 2 {
					break
				}
				plan.take(a.Name, day)
			}
			continue
		}

		// Preference pairs only apply when the agent holds no PTO day this
		// week; with one PTO day the single remaining slot falls through to
		// the slack-maximization pick.
		if len(plan.offs[a.Name]) == 0 {
			if g.takePair(plan, a.Name, a.PreferredDaysOff1) {
				continue
			}
			if g.takePair(plan, a.Name, a.PreferredDaysOff2) {
				continue
			}
		}

		g.takeFallback(plan, a.Name)
	}

	return plan
}

// takePair grants a preferred off-day pair when every day in it still has
// headroom below the weekday's slack.
func (g *generator) takePair(plan *weekPlan, agent string, pair []string) bool {
	if len(pair) != 2 || pair[0] == pair[1] {
		return false
	}
	for _, day := range pair {
		if !validWeekday(day) || plan.tally[day] >= plan.slack[day] {
			return false
		}
	}
	for _, day := range pair {
		plan.take(agent, day)
	}
	return true
}

// takeFallback tops the agent up to 2 off-days using the weekdays with the
// greatest remaining slack, ties broken by weekday declaration order.
func (g *generator) takeFallback(plan *weekPlan, agent string) {
	var candidates []string
	for _, day := range models.Weekdays {
		if !plan.isOff(agent, day) {
			candidates = append(candidates, day)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri := plan.slack[candidates[i]] - plan.tally[candidates[i]]
		rj := plan.slack[candidates[j]] - plan.tally[candidates[j]]
		return ri > rj
	})

	for _, day := range candidates {
		if len(plan.offs[agent]) >= 2 {
			break
		}
		plan.take(agent, day)
	}
}

func validWeekday(name string) bool {
	for _, d := range models.Weekdays {
		if d == name {
			return true
		}
	}
	return false
}
