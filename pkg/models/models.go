package models

// Weekdays lists weekday names in declaration order, Monday first.
// All weekly structures (staffing rules, off-day preferences) are keyed
// by these names.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Task types assignable within a shift.
const (
	TaskCalls   = "Calls"
	TaskChats   = "Chats"
	TaskTickets = "Tickets"
)

// ShiftFlexible marks an agent with no fixed shift affinity.
const ShiftFlexible = "any"

// Assignment statuses.
const (
	StatusWorking = "WORKING"
	StatusOff     = "OFF"
	StatusPTO     = "PTO"
)

// Generation scopes.
const (
	ScopeFull       = "full"
	ScopeFirstHalf  = "first_half"
	ScopeSecondHalf = "second_half"
)

// Agent represents a schedulable worker
type Agent struct {
	Name              string   `json:"name"`
	ShiftID           string   `json:"shift_id"` // a shift id, or "any" for flexible
	Bilingual         bool     `json:"bilingual"`
	PreferredDaysOff1 []string `json:"preferred_days_off_1"` // ordered pair of weekday names
	PreferredDaysOff2 []string `json:"preferred_days_off_2"` // fallback pair
	PTO               []string `json:"pto"`                  // ISO dates (2006-01-02), leave always wins
}

// ShiftDefinition represents a time-of-day work category
type ShiftDefinition struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start"` // "15:04"
	End   string `json:"end"`
	Color string `json:"color,omitempty"`
}

// StaffingRule defines minimum headcount and task demand for one
// (weekday, shift) slot, reused identically every week of the month
type StaffingRule struct {
	MinStaff int `json:"min_staff"`
	Calls    int `json:"calls"`
	Chats    int `json:"chats"`
	Tickets  int `json:"tickets"`
}

// RuleSet maps weekday name -> shift id -> rule
type RuleSet map[string]map[string]StaffingRule

// GenerationConfig carries the knobs for a single generation run
type GenerationConfig struct {
	ProjectStartDate   string `json:"project_start_date"` // ISO date; first date the system may generate for
	MaxConsecutiveDays int    `json:"max_consecutive_days"`
	SplitDate          int    `json:"split_date"` // day-of-month 1-28 dividing the two halves
	Scope              string `json:"scope"`      // full | first_half | second_half

	// DisableBilingualRotation turns off the forced off-day rotation for
	// bilingual agents; they then follow the ordinary preference path.
	// Pending product confirmation that forced rotation is the long-term rule.
	DisableBilingualRotation bool `json:"disable_bilingual_rotation,omitempty"`

	// ShuffleAllocation randomizes agent order during weekly off-day
	// allocation instead of using declaration order.
	ShuffleAllocation bool `json:"shuffle_allocation,omitempty"`

	// Seed fixes the pseudo-random source for reproducible runs.
	// Zero means seed from the clock.
	Seed int64 `json:"seed,omitempty"`
}

// Assignment is one agent's state on one day
type Assignment struct {
	Status   string `json:"status"`
	ShiftID  string `json:"shift_id,omitempty"`
	Task     string `json:"task,omitempty"`
	IsManual bool   `json:"is_manual,omitempty"`
}

// Day is one generated calendar day
type Day struct {
	Date              string                `json:"date"` // ISO date
	Weekday           string                `json:"weekday"`
	IsCurrentMonth    bool                  `json:"is_current_month"`
	Assignments       map[string]Assignment `json:"assignments"` // agent name -> assignment
	ShiftCoverage     map[string]int        `json:"shift_coverage"`
	BilingualCoverage map[string]int        `json:"bilingual_coverage"`
	Total             int                   `json:"total"`
	HasShortage       bool                  `json:"has_shortage"`
	IsLocked          bool                  `json:"is_locked,omitempty"`
}

// AgentState carries an agent's streak counters across run boundaries
type AgentState struct {
	Consecutive int `json:"consecutive"`
	Weekly      int `json:"weekly"`
}

// ContinuityState maps agent name -> carried-over counters
type ContinuityState map[string]AgentState

// Summary aggregates shortage/health metrics over the generated grid
type Summary struct {
	HealthScore     int `json:"health_score"`
	TotalDays       int `json:"total_days"`
	OptimalDays     int `json:"optimal_days"`
	CriticalDays    int `json:"critical_days"`
	TotalShiftSlots int `json:"total_shift_slots"`
}

// HistoryGrid is an operator-entered working/off grid for the days
// preceding the generation window: agent name -> one bool per day,
// oldest first, true meaning the agent worked that day.
type HistoryGrid map[string][]bool

// RosterInput is the data structure for the roster generation endpoint
type RosterInput struct {
	Agents []Agent           `json:"agents"`
	Shifts []ShiftDefinition `json:"shifts"`
	Rules  RuleSet           `json:"rules"`
	Config GenerationConfig  `json:"config"`
	Year   int               `json:"year"`
	Month  int               `json:"month"` // 1-based

	// Continuity, when present, supplies the day-zero counters directly.
	Continuity ContinuityState `json:"continuity,omitempty"`

	// History, when present, is the manual reconstruction path: the engine
	// derives Continuity from it.
	History HistoryGrid `json:"history,omitempty"`

	// HistoryDates are the ISO dates the History columns refer to,
	// oldest first. Required alongside History.
	HistoryDates []string `json:"history_dates,omitempty"`

	// FirstHalf is a previously generated grid for the same month, used to
	// lock days at or before SplitDate when Scope is second_half.
	FirstHalf []Day `json:"first_half,omitempty"`
}

// RosterResult is the full outcome of one generation run. It doubles as
// the persisted record the engine depends on for continuity.
type RosterResult struct {
	Grid       []Day           `json:"grid"`
	Warnings   []string        `json:"warnings"`
	Summary    Summary         `json:"summary"`
	FinalState ContinuityState `json:"final_state"`
}

// OverrideInput is the data structure for the manual override endpoint
type OverrideInput struct {
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	DayIndex   int               `json:"day_index"`
	AgentName  string            `json:"agent_name"`
	Assignment Assignment        `json:"assignment"`
	Agents     []Agent           `json:"agents"`
	Shifts     []ShiftDefinition `json:"shifts"`
	Rules      RuleSet           `json:"rules"`
}
