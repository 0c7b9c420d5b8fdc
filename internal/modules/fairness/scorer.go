// README: Weekly fairness scoring; lower scores win seats first.
package fairness

import (
	"hash/fnv"
	"strings"

	"carpools/internal/modules/schedule"
)

// pairingPenalty dominates the base range, so a rider with fewer pairings
// this week always outranks a rider with more; the base only breaks ties
// within the same pairing count.
const (
	baseRange      = 1000
	pairingPenalty = 1000
)

// Base is a deterministic pseudo-random priority in [1, 1000] for one rider
// and one week. The same (week, email) always yields the same value, and a
// new week reshuffles everyone. It is a fairness randomisation derived from
// a stable hash, not a security primitive, and holds no shared generator
// state across requests.
func Base(email string, week schedule.WeekKey) int {
	h := fnv.New64a()
	h.Write([]byte(week.String()))
	h.Write([]byte("|"))
	h.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	return int(h.Sum64()%baseRange) + 1
}

// Score ranks a rider for one week given how many times they were already
// paired that week.
func Score(email string, week schedule.WeekKey, pairingsThisWeek int) int {
	return Base(email, week) + pairingsThisWeek*pairingPenalty
}
