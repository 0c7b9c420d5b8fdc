// README: Rider aggregate: divisions plus per-date availability slots.
package rider

import (
	"carpools/internal/modules/schedule"
	"carpools/internal/types"
)

// Slot is one availability interval on one date. Clock strings are kept
// verbatim as stored; parsing happens at match time. DriveID is set when a
// slot is consumed by an assignment and is informational only.
type Slot struct {
	Start   string   `json:"start" firestore:"start"`
	End     string   `json:"end" firestore:"end"`
	DriveID types.ID `json:"drive_id,omitempty" firestore:"drive_id,omitempty"`
}

type Rider struct {
	ID    types.ID `json:"id" firestore:"-"`
	Name  string   `json:"name" firestore:"name"`
	Email string   `json:"email" firestore:"email"`
	// Divisions maps region name to eligibility.
	Divisions map[string]bool `json:"divisions" firestore:"divisions"`
	// Availability maps date label to that date's open slots. Date labels
	// compare case-insensitively but keep their stored casing.
	Availability map[string][]Slot `json:"availability" firestore:"availability"`
}

// DateKey resolves a date label to the stored availability key, ignoring
// case, and reports whether an entry exists.
func (r *Rider) DateKey(label string) (string, bool) {
	for k := range r.Availability {
		if schedule.SameDate(k, label) {
			return k, true
		}
	}
	return "", false
}

// EligibleFor reports whether the rider opted into at least one of the
// given regions.
func (r *Rider) EligibleFor(regions []string) bool {
	for _, region := range regions {
		if r.Divisions[region] {
			return true
		}
	}
	return false
}

// MergeDivisions ORs src into a copy of dst; an opt-in is never revoked by
// a later signup that omits the region.
func MergeDivisions(dst, src map[string]bool) map[string]bool {
	out := make(map[string]bool, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = out[k] || v
	}
	return out
}
