// README: Matching service orchestrates candidate pools, fairness history and write-back.
package matching

import (
	"context"
	"time"

	"go.uber.org/zap"

	"carpools/internal/modules/drive"
	"carpools/internal/modules/journal"
	"carpools/internal/modules/region"
	"carpools/internal/modules/rider"
	"carpools/internal/modules/schedule"
	"carpools/internal/types"
)

// DriveStore is the slice of the drive store the matcher needs.
type DriveStore interface {
	GetAll(ctx context.Context) ([]drive.Drive, error)
	UpdateAssignments(ctx context.Context, d *drive.Drive) error
}

// RiderPool lists candidate riders.
type RiderPool interface {
	List(ctx context.Context) ([]rider.Rider, error)
}

// Ledger consumes a rider's availability once they are matched.
type Ledger interface {
	ConsumeDay(ctx context.Context, riderID types.ID, dateLabel, start, end string, driveID types.ID) (bool, error)
}

type Service struct {
	drives  DriveStore
	riders  RiderPool
	ledger  Ledger
	journal *journal.Journal
	log     *zap.Logger
	// now is swappable for tests.
	now func() time.Time
}

func NewService(drives DriveStore, riders RiderPool, ledger Ledger, jnl *journal.Journal, log *zap.Logger) *Service {
	return &Service{
		drives:  drives,
		riders:  riders,
		ledger:  ledger,
		journal: jnl,
		log:     log,
		now:     time.Now,
	}
}

// MatchDrive selects riders for one drive and writes the result back:
// availability is consumed per rider and the drive's capacity bookkeeping
// is updated once at the end. All state is re-read per call; nothing is
// cached across invocations.
//
// The read-decide-write sequence assumes the caller serializes concurrent
// matchers touching the same drive or rider records. Matching two drives
// with overlapping pools concurrently can double-book a rider.
func (s *Service) MatchDrive(ctx context.Context, d *drive.Drive) ([]Selection, error) {
	if region.ContainsUnknown(d.Regions) {
		s.log.Warn("match refused: drive outside service area",
			zap.String("drive_id", string(d.ID)))
		return nil, nil
	}

	week, parsed := schedule.WeekOf(d.Date, s.now())
	if !parsed {
		s.log.Warn("match: drive date fell back to current week",
			zap.String("drive_id", string(d.ID)),
			zap.String("date", d.Date))
	}

	pool, err := s.riders.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.pairingCounts(ctx, week)
	if err != nil {
		return nil, err
	}

	selections := Select(d, pool, counts, week)

	var recorded []Selection
	for _, sel := range selections {
		if sel.ClockFallback {
			s.log.Warn("match: clock parse fallback in selection",
				zap.String("drive_id", string(d.ID)),
				zap.String("rider_id", string(sel.RiderID)))
		}
		ok, err := s.ledger.ConsumeDay(ctx, sel.RiderID, sel.DateKey, d.Start, d.End, d.ID)
		if err != nil {
			s.log.Warn("match: availability consume failed, skipping rider",
				zap.String("rider_id", string(sel.RiderID)), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if d.RecordRider(sel.RiderID) {
			recorded = append(recorded, sel)
			if err := s.journal.Append(ctx, journal.PairingEvent{
				DriveID:   d.ID,
				RiderID:   sel.RiderID,
				Week:      week,
				Via:       journal.ViaMatched,
				CreatedAt: s.now(),
			}); err != nil {
				s.log.Warn("pairing journal append failed", zap.Error(err))
			}
		}
	}

	if len(recorded) > 0 {
		if err := s.drives.UpdateAssignments(ctx, d); err != nil {
			return recorded, err
		}
	}
	return recorded, nil
}

// pairingCounts scans every drive dated in the given ISO week and counts
// how many list each rider as paired. Drives stay the authoritative record
// of pairing history.
func (s *Service) pairingCounts(ctx context.Context, week schedule.WeekKey) (map[types.ID]int, error) {
	drives, err := s.drives.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[types.ID]int)
	for i := range drives {
		w, parsed := schedule.WeekOf(drives[i].Date, s.now())
		if !parsed {
			s.log.Warn("pairing count: drive date fell back to current week",
				zap.String("drive_id", string(drives[i].ID)),
				zap.String("date", drives[i].Date))
		}
		if w != week {
			continue
		}
		for _, riderID := range drives[i].PairedRiders {
			counts[riderID]++
		}
	}
	return counts, nil
}
