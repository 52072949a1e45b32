package formation

import (
	"fmt"
	"sort"

	"github.com/fantadev/asta/internal/models"
)

// Report describes how well one roster covers one formation. Lineup entries
// follow the formation's original slot order; an unfillable slot is marked
// with the warning prefix. Coverage is unrounded; rounding is left to
// presentation.
type Report struct {
	Formation string        `json:"formation"`
	Complete  bool          `json:"complete"`
	Coverage  float64       `json:"coverage"`
	Lineup    []string      `json:"lineup"`
	Missing   []models.Role `json:"missing"`
	Surplus   []string      `json:"surplus"`
}

const missingMarker = "⚠️ "

// Analyze maps the roster onto the formation's slots with a greedy
// constrained-first assignment. Slots with fewer alternatives are processed
// first; within a slot the candidate roles are scanned in listed order and
// the eligible player with the fewest total roles is consumed. The greedy
// pass is intentionally not an optimal matching; its tie-break order is the
// contract and is pinned by tests.
func Analyze(roster []models.Player, f Formation) Report {
	report := Report{
		Formation: f.Name,
		Complete:  true,
		Lineup:    make([]string, len(f.Slots)),
	}

	type indexedSlot struct {
		slot  Slot
		index int
	}
	order := make([]indexedSlot, len(f.Slots))
	for i, s := range f.Slots {
		order[i] = indexedSlot{slot: s, index: i}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(order[a].slot) < len(order[b].slot)
	})

	consumed := make([]bool, len(roster))
	bound := make([]int, len(f.Slots))
	for i := range bound {
		bound[i] = -1
	}

	filled := 0
	for _, is := range order {
		best := -1
		for _, role := range is.slot {
			// Roster order breaks ties between players with equally few roles.
			for ri := range roster {
				if consumed[ri] || !roster[ri].Roles.Has(role) {
					continue
				}
				if best == -1 || len(roster[ri].Roles) < len(roster[best].Roles) {
					best = ri
				}
			}
			if best != -1 {
				break
			}
		}
		if best != -1 {
			consumed[best] = true
			bound[is.index] = best
			filled++
		} else {
			report.Complete = false
			report.Missing = append(report.Missing, is.slot[0])
		}
	}

	for i, s := range f.Slots {
		if ri := bound[i]; ri != -1 {
			report.Lineup[i] = fmt.Sprintf("%s (%s)", s, roster[ri].Roles)
		} else {
			report.Lineup[i] = missingMarker + s.String()
		}
	}

	// Surplus: unconsumed players eligible for any role the formation uses,
	// each counted once.
	seen := make(map[models.Role]bool)
	for _, s := range f.Slots {
		for _, role := range s {
			if seen[role] {
				continue
			}
			seen[role] = true
			for ri := range roster {
				if consumed[ri] || !roster[ri].Roles.Has(role) {
					continue
				}
				consumed[ri] = true
				report.Surplus = append(report.Surplus, roster[ri].Roles.String())
			}
		}
	}

	if len(f.Slots) > 0 {
		report.Coverage = float64(filled) / float64(len(f.Slots)) * 100
	} else {
		report.Coverage = 100
	}
	return report
}

// AnalyzeAll scores the roster against every formation independently; no
// player is spent across formations.
func AnalyzeAll(roster []models.Player, formations []Formation) []Report {
	reports := make([]Report, 0, len(formations))
	for _, f := range formations {
		reports = append(reports, Analyze(roster, f))
	}
	return reports
}
