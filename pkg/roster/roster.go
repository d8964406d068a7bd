// Package roster implements the roster-generation engine: a single-pass,
// priority-ordered greedy heuristic that assigns a pool of agents to daily
// shifts across a calendar month. It is a pure function of its inputs plus
// an injected pseudo-random source; residual understaffing is reported, not
// fatal.
package roster

import (
	"math/rand"
	"time"

	"github.com/tradeling/roster-api-go/pkg/models"
)

// Agents may work at most this many days per Monday-starting week.
const maxWeeklyDays = 5

const (
	defaultMaxConsecutiveDays = 5
	defaultSplitDate          = 15
)

type generator struct {
	agents []models.Agent
	shifts []models.ShiftDefinition
	rules  models.RuleSet
	cfg    models.GenerationConfig
	year   int
	month  time.Month

	rng *rand.Rand

	// splitBoundary is the last date of the first half within the target
	// month; scope gating compares against it.
	splitBoundary time.Time

	pto          map[string]map[string]bool // agent name -> ISO date -> on leave
	weekly       map[string]int
	consecutive  map[string]int
	warnings     []string
	hasBilingual bool

	// lockedDays holds the first-half grid by date when a second-half run
	// reuses it; nil otherwise.
	lockedDays map[string]models.Day
}

// Generate produces a full month's assignment grid plus a shortage/health
// report. It returns ErrInvalidPeriod for a malformed target,
// ErrContinuityUnknown when prior-period state must be supplied by the
// caller, and ErrMissingContinuityInput when a supplied history grid is
// unusable. Understaffing never fails a run; it surfaces in Warnings and
// the summary.
func Generate(in models.RosterInput) (*models.RosterResult, error) {
	cfg := in.Config
	normalizeConfig(&cfg)

	weeks, err := MonthWeeks(in.Year, time.Month(in.Month))
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &generator{
		agents: in.Agents,
		shifts: in.Shifts,
		rules:  in.Rules,
		cfg:    cfg,
		year:   in.Year,
		month:  time.Month(in.Month),
		rng:    rand.New(rand.NewSource(seed)),
	}
	g.splitBoundary = time.Date(g.year, g.month, cfg.SplitDate, 0, 0, 0, 0, time.UTC)

	g.pto = make(map[string]map[string]bool, len(g.agents))
	for _, a := range g.agents {
		set := make(map[string]bool, len(a.PTO))
		for _, d := range a.PTO {
			set[d] = true
		}
		g.pto[a.Name] = set
		if a.Bilingual {
			g.hasBilingual = true
		}
	}

	initial, err := g.resolveContinuity(&in)
	if err != nil {
		return nil, err
	}

	g.weekly = make(map[string]int, len(g.agents))
	g.consecutive = make(map[string]int, len(g.agents))
	for _, a := range g.agents {
		st := initial[a.Name]
		g.weekly[a.Name] = st.Weekly
		g.consecutive[a.Name] = st.Consecutive
	}

	var grid []models.Day
	for _, week := range weeks {
		// Weeks start on Monday, so the weekly counter resets here. A
		// carried-over weekly count only matters when the generation window
		// opens mid-week: a second-half resume without a first-half grid.
		for name := range g.weekly {
			g.weekly[name] = 0
		}
		if g.cfg.Scope == models.ScopeSecondHalf && g.lockedDays == nil && g.weekContainsSplit(week) {
			for name, st := range initial {
				g.weekly[name] = st.Weekly
			}
		}

		plan := g.planWeek(week)
		for _, date := range week {
			if day, ok := g.buildDay(date, plan); ok {
				grid = append(grid, day)
			}
		}
	}

	final := make(models.ContinuityState, len(g.agents))
	for _, a := range g.agents {
		final[a.Name] = models.AgentState{
			Consecutive: g.consecutive[a.Name],
			Weekly:      g.weekly[a.Name],
		}
	}

	return &models.RosterResult{
		Grid:       grid,
		Warnings:   g.warnings,
		Summary:    Summarize(grid, len(g.shifts)),
		FinalState: final,
	}, nil
}

func (g *generator) weekContainsSplit(week []time.Time) bool {
	for _, date := range week {
		if date.Year() == g.year && date.Month() == g.month && date.Day() == g.cfg.SplitDate {
			return true
		}
	}
	return false
}

func normalizeConfig(cfg *models.GenerationConfig) {
	if cfg.MaxConsecutiveDays < 1 {
		cfg.MaxConsecutiveDays = defaultMaxConsecutiveDays
	}
	if cfg.SplitDate < 1 || cfg.SplitDate > 28 {
		cfg.SplitDate = defaultSplitDate
	}
	if cfg.Scope == "" {
		cfg.Scope = models.ScopeFull
	}
}
