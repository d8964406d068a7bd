package roster

import "github.com/tradeling/roster-api-go/pkg/models"

// shiftBucket is the per-day working set for one shift. It is allocated
// fresh every day; shift definitions themselves are never mutated.
type shiftBucket struct {
	def    models.ShiftDefinition
	rule   models.StaffingRule
	agents []models.Agent
}

func (b *shiftBucket) bilingualCount() int {
	n := 0
	for _, a := range b.agents {
		if a.Bilingual {
			n++
		}
	}
	return n
}

// bucketShifts locks each eligible agent to a single shift for the day.
// Fixed-affinity agents go to their own shift; flexible agents (and agents
// whose affinity matches no configured shift) go to the shift with the
// lowest assigned/minStaff ratio, ties broken by shift declaration order.
func (g *generator) bucketShifts(eligible []models.Agent, rules map[string]models.StaffingRule) []*shiftBucket {
	buckets := make([]*shiftBucket, len(g.shifts))
	byID := make(map[string]*shiftBucket, len(g.shifts))
	for i, def := range g.shifts {
		buckets[i] = &shiftBucket{def: def, rule: rules[def.ID]}
		byID[def.ID] = buckets[i]
	}

	var flexible []models.Agent
	for _, a := range eligible {
		if b, ok := byID[a.ShiftID]; ok && a.ShiftID != models.ShiftFlexible {
			b.agents = append(b.agents, a)
		} else {
			flexible = append(flexible, a)
		}
	}

	for _, a := range flexible {
		var target *shiftBucket
		best := 0.0
		for _, b := range buckets {
			min := b.rule.MinStaff
			if min < 1 {
				min = 1
			}
			ratio := float64(len(b.agents)) / float64(min)
			if target == nil || ratio < best {
				target = b
				best = ratio
			}
		}
		if target != nil {
			target.agents = append(target.agents, a)
		}
	}

	return buckets
}

// rebalanceBilingual runs once per day after the base assignment: for each
// ordered shift pair, when one shift has no bilingual agents and the other
// has two or more, exactly one bilingual agent moves to the starved shift.
// Only agents already in a working bucket are candidates.
func (g *generator) rebalanceBilingual(buckets []*shiftBucket) {
	for _, starved := range buckets {
		if starved.bilingualCount() != 0 {
			continue
		}
		for _, surplus := range buckets {
			if surplus == starved || surplus.bilingualCount() < 2 {
				continue
			}
			if moveBilingual(surplus, starved) {
				break
			}
		}
	}
}

func moveBilingual(from, to *shiftBucket) bool {
	for i, a := range from.agents {
		if a.Bilingual {
			from.agents = append(from.agents[:i], from.agents[i+1:]...)
			to.agents = append(to.agents, a)
			return true
		}
	}
	return false
}
