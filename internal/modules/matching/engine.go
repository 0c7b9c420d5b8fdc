// README: Pure greedy selection: filter by availability and region, rank by fairness.
package matching

import (
	"sort"

	"carpools/internal/modules/drive"
	"carpools/internal/modules/fairness"
	"carpools/internal/modules/region"
	"carpools/internal/modules/rider"
	"carpools/internal/modules/schedule"
	"carpools/internal/types"
)

// Selection is one chosen rider plus the slot that made them eligible, so
// write-back can consume exactly that entry.
type Selection struct {
	RiderID    types.ID
	RiderEmail string
	// DateKey is the rider's availability key in its stored casing.
	DateKey   string
	SlotIndex int
	Slot      rider.Slot
	Score     int
	// ClockFallback marks a selection whose clock strings failed to parse
	// and resolved to zero minutes; callers log these as degraded matches.
	ClockFallback bool
}

// Select picks up to d.RemainingCapacity riders from pool, lowest fairness
// score first, ties broken by pool order. It is pure: no I/O, no mutation
// of its inputs, deterministic given (drive, pool, counts, week).
func Select(d *drive.Drive, pool []rider.Rider, counts map[types.ID]int, week schedule.WeekKey) []Selection {
	if d.RemainingCapacity <= 0 || region.ContainsUnknown(d.Regions) {
		return nil
	}

	driveStart, startOK := schedule.ParseClock(d.Start)
	driveEnd, endOK := schedule.ParseClock(d.End)
	driveFallback := !startOK || !endOK

	var eligible []Selection
	for i := range pool {
		r := &pool[i]

		dateKey, ok := r.DateKey(d.Date)
		if !ok {
			continue
		}
		if !r.EligibleFor(d.Regions) {
			continue
		}

		slotIdx := -1
		slotFallback := false
		blocked := false
		for j, slot := range r.Availability[dateKey] {
			ss, ssOK := schedule.ParseClock(slot.Start)
			se, seOK := schedule.ParseClock(slot.End)
			if !schedule.Overlaps(ss, se, driveStart, driveEnd) {
				continue
			}
			// An overlapping slot already assigned elsewhere excludes the
			// rider outright, even if other free slots remain.
			if slot.DriveID != "" {
				blocked = true
				break
			}
			if slotIdx < 0 {
				slotIdx = j
				slotFallback = !ssOK || !seOK
			}
		}
		if blocked || slotIdx < 0 {
			continue
		}

		eligible = append(eligible, Selection{
			RiderID:       r.ID,
			RiderEmail:    r.Email,
			DateKey:       dateKey,
			SlotIndex:     slotIdx,
			Slot:          r.Availability[dateKey][slotIdx],
			Score:         fairness.Score(r.Email, week, counts[r.ID]),
			ClockFallback: driveFallback || slotFallback,
		})
	}

	// Stable sort keeps pool order on equal scores, so results are
	// deterministic for a given input ordering.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Score < eligible[j].Score
	})

	if len(eligible) > d.RemainingCapacity {
		eligible = eligible[:d.RemainingCapacity]
	}
	return eligible
}
