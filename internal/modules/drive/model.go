// README: Drive aggregate: one offered ride with seat capacity and derived status.
package drive

import (
	"time"

	"carpools/internal/types"
)

type Status string

const (
	StatusAvailable       Status = "available"
	StatusPartiallyFilled Status = "partially_filled"
	StatusFilled          Status = "filled"
)

// StatusFor derives status from capacity. Status is never stored
// independently of this rule; any capacity edit recomputes it.
func StatusFor(remaining, total int) Status {
	switch {
	case remaining <= 0:
		return StatusFilled
	case remaining < total:
		return StatusPartiallyFilled
	default:
		return StatusAvailable
	}
}

type Drive struct {
	ID          types.ID `json:"id" firestore:"-"`
	DriverName  string   `json:"driver_name" firestore:"driver_name"`
	DriverEmail string   `json:"driver_email" firestore:"driver_email"`
	DriverPhone string   `json:"driver_phone" firestore:"driver_phone"`
	// Address is the raw pickup address; Pickup is its geocoded point.
	Address string      `json:"address" firestore:"address"`
	Pickup  types.Point `json:"pickup" firestore:"pickup"`
	Regions []string    `json:"regions" firestore:"regions"`
	// Date is the drive's date label; Start/End bound the time window.
	Date  string `json:"date" firestore:"date"`
	Start string `json:"start" firestore:"start"`
	End   string `json:"end" firestore:"end"`

	TotalCapacity     int        `json:"total_capacity" firestore:"total_capacity"`
	RemainingCapacity int        `json:"remaining_capacity" firestore:"remaining_capacity"`
	PairedRiders      []types.ID `json:"paired_riders" firestore:"paired_riders"`
	Status            Status     `json:"status" firestore:"status"`
	CreatedAt         time.Time  `json:"created_at" firestore:"created_at"`
}

// HasRider reports membership in the paired list.
func (d *Drive) HasRider(id types.ID) bool {
	for _, r := range d.PairedRiders {
		if r == id {
			return true
		}
	}
	return false
}

// RecordRider appends a rider and updates capacity bookkeeping. It is
// idempotent: recording a rider already paired changes nothing and returns
// false.
func (d *Drive) RecordRider(id types.ID) bool {
	if d.HasRider(id) {
		return false
	}
	d.PairedRiders = append(d.PairedRiders, id)
	d.RemainingCapacity--
	d.Recompute()
	return true
}

// Recompute floors remaining capacity at zero and re-derives status.
func (d *Drive) Recompute() {
	if d.RemainingCapacity < 0 {
		d.RemainingCapacity = 0
	}
	d.Status = StatusFor(d.RemainingCapacity, d.TotalCapacity)
}
