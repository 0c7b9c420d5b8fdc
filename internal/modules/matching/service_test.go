package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"carpools/internal/modules/drive"
	"carpools/internal/modules/rider"
	"carpools/internal/modules/schedule"
	"carpools/internal/types"
)

// ---------------------------------------------------------------------------
// In-memory fakes for the matcher's collaborator interfaces
// ---------------------------------------------------------------------------

type fakeDriveStore struct {
	drives  map[types.ID]*drive.Drive
	updates int
}

func (f *fakeDriveStore) GetAll(ctx context.Context) ([]drive.Drive, error) {
	out := make([]drive.Drive, 0, len(f.drives))
	for _, d := range f.drives {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDriveStore) UpdateAssignments(ctx context.Context, d *drive.Drive) error {
	f.updates++
	f.drives[d.ID] = d
	return nil
}

type fakeRiderPool struct {
	riders      map[types.ID]*rider.Rider
	consumeErrs map[types.ID]error
}

func (f *fakeRiderPool) List(ctx context.Context) ([]rider.Rider, error) {
	out := make([]rider.Rider, 0, len(f.riders))
	for _, r := range f.riders {
		out = append(out, *r)
	}
	return out, nil
}

// ConsumeDay mimics the ledger: whole-day deletion on consume.
func (f *fakeRiderPool) ConsumeDay(ctx context.Context, riderID types.ID, dateLabel, start, end string, driveID types.ID) (bool, error) {
	if err := f.consumeErrs[riderID]; err != nil {
		return false, err
	}
	r, ok := f.riders[riderID]
	if !ok {
		return false, nil
	}
	key, ok := r.DateKey(dateLabel)
	if !ok {
		return false, nil
	}
	delete(r.Availability, key)
	return true, nil
}

func newTestService(drives *fakeDriveStore, pool *fakeRiderPool) *Service {
	svc := NewService(drives, pool, pool, nil, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, time.April, 7, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func poolOf(riders ...rider.Rider) *fakeRiderPool {
	f := &fakeRiderPool{riders: make(map[types.ID]*rider.Rider)}
	for i := range riders {
		r := riders[i]
		f.riders[r.ID] = &r
	}
	return f
}

func storeOf(drives ...*drive.Drive) *fakeDriveStore {
	f := &fakeDriveStore{drives: make(map[types.ID]*drive.Drive)}
	for _, d := range drives {
		f.drives[d.ID] = d
	}
	return f
}

// ---------------------------------------------------------------------------

func TestMatchDrive_EndToEndFillsDrive(t *testing.T) {
	d := testDrive(1)
	store := storeOf(d)
	pool := poolOf(testRider("r1", "a@x.com"))
	svc := newTestService(store, pool)

	recorded, err := svc.MatchDrive(context.Background(), d)
	if err != nil {
		t.Fatalf("MatchDrive: %v", err)
	}
	if len(recorded) != 1 || recorded[0].RiderID != "r1" {
		t.Fatalf("recorded = %v, want [r1]", recorded)
	}
	if d.Status != drive.StatusFilled || d.RemainingCapacity != 0 {
		t.Errorf("drive = status %s remaining %d, want filled/0", d.Status, d.RemainingCapacity)
	}
	if len(d.PairedRiders) != 1 || d.PairedRiders[0] != "r1" {
		t.Errorf("PairedRiders = %v, want [r1]", d.PairedRiders)
	}
	if store.updates != 1 {
		t.Errorf("UpdateAssignments called %d times, want 1", store.updates)
	}
}

func TestMatchDrive_ConsumedDayBlocksRematch(t *testing.T) {
	d := testDrive(1)
	store := storeOf(d)
	pool := poolOf(testRider("r1", "a@x.com"))
	svc := newTestService(store, pool)

	if _, err := svc.MatchDrive(context.Background(), d); err != nil {
		t.Fatalf("first match: %v", err)
	}
	if _, ok := pool.riders["r1"].Availability["2025-04-07"]; ok {
		t.Fatal("matched date entry should be deleted from availability")
	}

	// A second drive on the same date finds no candidate slot.
	d2 := testDrive(1)
	d2.ID = "drive-2"
	store.drives[d2.ID] = d2
	recorded, err := svc.MatchDrive(context.Background(), d2)
	if err != nil {
		t.Fatalf("second match: %v", err)
	}
	if len(recorded) != 0 {
		t.Errorf("second match recorded %v, want none", recorded)
	}
}

func TestMatchDrive_PairingHistoryLowersPriority(t *testing.T) {
	// A prior filled drive this week pushes r1 behind r2 and r3.
	prior := testDrive(1)
	prior.ID = "prior"
	prior.PairedRiders = []types.ID{"r1"}
	prior.RemainingCapacity = 0
	prior.Recompute()

	d := testDrive(2)
	store := storeOf(prior, d)
	pool := poolOf(testRider("r1", "a@x.com"), testRider("r2", "b@x.com"), testRider("r3", "c@x.com"))
	svc := newTestService(store, pool)

	recorded, err := svc.MatchDrive(context.Background(), d)
	if err != nil {
		t.Fatalf("MatchDrive: %v", err)
	}
	got := selectedIDs(recorded)
	if contains(got, "r1") {
		t.Errorf("selected %v; r1 already paired this week and must lose to r2/r3", got)
	}
	if len(got) != 2 {
		t.Errorf("selected %d riders, want 2", len(got))
	}
}

func TestMatchDrive_PriorPairingInAnotherWeekDoesNotCount(t *testing.T) {
	prior := testDrive(1)
	prior.ID = "prior"
	prior.Date = "2025-03-03" // a different ISO week
	prior.PairedRiders = []types.ID{"r1"}

	d := testDrive(2)
	store := storeOf(prior, d)
	pool := poolOf(testRider("r1", "a@x.com"), testRider("r2", "b@x.com"), testRider("r3", "c@x.com"))
	svc := newTestService(store, pool)

	week, _ := schedule.WeekOf(d.Date, time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC))
	counts, err := svc.pairingCounts(context.Background(), week)
	if err != nil {
		t.Fatalf("pairingCounts: %v", err)
	}
	if counts["r1"] != 0 {
		t.Errorf("count for r1 = %d, want 0 for a different week", counts["r1"])
	}
}

func TestMatchDrive_RefusesUnknownRegion(t *testing.T) {
	d := testDrive(1)
	d.Regions = []string{"Unknown"}
	store := storeOf(d)
	pool := poolOf(testRider("r1", "a@x.com"))
	svc := newTestService(store, pool)

	recorded, err := svc.MatchDrive(context.Background(), d)
	if err != nil {
		t.Fatalf("MatchDrive: %v", err)
	}
	if len(recorded) != 0 || store.updates != 0 {
		t.Errorf("Unknown-region drive must not match or write back")
	}
}

func TestMatchDrive_ConsumeFailureSkipsRider(t *testing.T) {
	d := testDrive(2)
	store := storeOf(d)
	pool := poolOf(testRider("r1", "a@x.com"), testRider("r2", "b@x.com"))
	pool.consumeErrs = map[types.ID]error{"r1": errors.New("firestore unavailable")}
	svc := newTestService(store, pool)

	recorded, err := svc.MatchDrive(context.Background(), d)
	if err != nil {
		t.Fatalf("MatchDrive: %v", err)
	}
	// r1's availability could not be consumed, so only r2 is recorded.
	if len(recorded) != 1 || recorded[0].RiderID != "r2" {
		t.Fatalf("recorded = %v, want just r2", selectedIDs(recorded))
	}
	if d.RemainingCapacity != 1 || d.Status != drive.StatusPartiallyFilled {
		t.Errorf("drive = status %s remaining %d, want partially_filled/1", d.Status, d.RemainingCapacity)
	}
}
