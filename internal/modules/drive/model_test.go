package drive

import (
	"reflect"
	"testing"

	"carpools/internal/types"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		remaining, total int
		want             Status
	}{
		{4, 4, StatusAvailable},
		{3, 4, StatusPartiallyFilled},
		{1, 4, StatusPartiallyFilled},
		{0, 4, StatusFilled},
		{1, 1, StatusAvailable},
		{0, 1, StatusFilled},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.remaining, tt.total); got != tt.want {
			t.Errorf("StatusFor(%d, %d) = %s, want %s", tt.remaining, tt.total, got, tt.want)
		}
	}
}

func TestRecordRider_Bookkeeping(t *testing.T) {
	d := &Drive{TotalCapacity: 2, RemainingCapacity: 2, Status: StatusAvailable}

	if !d.RecordRider("r1") {
		t.Fatal("first record should insert")
	}
	if d.RemainingCapacity != 1 || d.Status != StatusPartiallyFilled {
		t.Errorf("after first rider: remaining=%d status=%s", d.RemainingCapacity, d.Status)
	}

	if !d.RecordRider("r2") {
		t.Fatal("second record should insert")
	}
	if d.RemainingCapacity != 0 || d.Status != StatusFilled {
		t.Errorf("after second rider: remaining=%d status=%s", d.RemainingCapacity, d.Status)
	}
}

func TestRecordRider_Idempotent(t *testing.T) {
	d := &Drive{TotalCapacity: 3, RemainingCapacity: 3}
	d.RecordRider("r1")

	before := *d
	beforeRiders := append([]types.ID(nil), d.PairedRiders...)

	if d.RecordRider("r1") {
		t.Fatal("recording the same rider twice should be a no-op")
	}
	if d.RemainingCapacity != before.RemainingCapacity || d.Status != before.Status {
		t.Errorf("idempotent record changed bookkeeping: %+v vs %+v", d, before)
	}
	if !reflect.DeepEqual(d.PairedRiders, beforeRiders) {
		t.Errorf("idempotent record changed paired riders: %v vs %v", d.PairedRiders, beforeRiders)
	}
}

func TestRecompute_FloorsAtZero(t *testing.T) {
	// A direct external capacity edit goes through the same recompute rule.
	d := &Drive{TotalCapacity: 2, RemainingCapacity: -1}
	d.Recompute()
	if d.RemainingCapacity != 0 {
		t.Errorf("RemainingCapacity = %d, want 0", d.RemainingCapacity)
	}
	if d.Status != StatusFilled {
		t.Errorf("Status = %s, want %s", d.Status, StatusFilled)
	}
}
