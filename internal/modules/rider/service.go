// README: Rider service: registration merge and availability consumption.
package rider

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carpools/internal/modules/schedule"
	"carpools/internal/types"
)

var ErrBadRequest = errors.New("bad request")

type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

type RegisterCommand struct {
	Name         string
	Email        string
	Availability map[string][]Slot
	Divisions    map[string]bool
}

// Register creates a rider, or updates the existing rider with the same
// name (email, availability and divisions are replaced as a unit, matching
// the reference deployment). Returns the rider id and whether a new
// document was created.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (types.ID, bool, error) {
	if cmd.Name == "" || cmd.Email == "" {
		return "", false, ErrBadRequest
	}

	existing, err := s.store.FindByName(ctx, cmd.Name)
	switch {
	case err == nil:
		if err := s.store.UpdateProfile(ctx, existing.ID, cmd.Email, cmd.Availability, cmd.Divisions); err != nil {
			return "", false, err
		}
		return existing.ID, false, nil
	case errors.Is(err, ErrNotFound):
		r := &Rider{
			Name:         cmd.Name,
			Email:        cmd.Email,
			Availability: cmd.Availability,
			Divisions:    cmd.Divisions,
		}
		id, err := s.store.Create(ctx, r)
		if err != nil {
			return "", false, err
		}
		return id, true, nil
	default:
		return "", false, err
	}
}

func (s *Service) List(ctx context.Context) ([]Rider, error) {
	return s.store.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Rider, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}

// ConsumeDay tags the slot matched by [start, end) with the assigned drive
// id and then removes the rider's entire availability entry for that date:
// one assignment consumes the whole day, including any other slots on it.
// A missing rider or date entry is a soft no-op returning false so batch
// write-back can continue past one bad record.
func (s *Service) ConsumeDay(ctx context.Context, riderID types.ID, dateLabel, start, end string, driveID types.ID) (bool, error) {
	r, err := s.store.GetByID(ctx, riderID)
	if errors.Is(err, ErrNotFound) {
		s.log.Warn("consume skipped: rider missing", zap.String("rider_id", string(riderID)))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	dateKey, ok := r.DateKey(dateLabel)
	if !ok {
		s.log.Warn("consume skipped: no availability entry",
			zap.String("rider_id", string(riderID)),
			zap.String("date", dateLabel))
		return false, nil
	}

	slots := r.Availability[dateKey]
	ws, wsOK := schedule.ParseClock(start)
	we, weOK := schedule.ParseClock(end)
	if !wsOK || !weOK {
		s.log.Warn("consume: drive window clock fallback",
			zap.String("start", start), zap.String("end", end))
	}
	tagged := false
	for i := range slots {
		if slots[i].DriveID != "" {
			continue
		}
		ss, _ := schedule.ParseClock(slots[i].Start)
		se, _ := schedule.ParseClock(slots[i].End)
		if schedule.Overlaps(ss, se, ws, we) {
			slots[i].DriveID = driveID
			tagged = true
			break
		}
	}
	if !tagged {
		s.log.Warn("consume: no overlapping slot to tag",
			zap.String("rider_id", string(riderID)),
			zap.String("date", dateKey))
	}
	discarded := len(slots)
	if tagged {
		discarded--
	}
	if discarded > 0 {
		// Whole-day consumption also discards these unmatched slots.
		s.log.Info("consume discards additional slots on date",
			zap.String("rider_id", string(riderID)),
			zap.String("date", dateKey),
			zap.Int("discarded", discarded))
	}

	if err := s.store.DeleteDay(ctx, riderID, dateKey); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AugmentDay appends exactly one slot to a single day's availability and
// merges region flags, creating the rider when the name is new. This is
// the self-service signup path; it never removes anything.
func (s *Service) AugmentDay(ctx context.Context, name, email, dateLabel string, slot Slot, divisions map[string]bool) (types.ID, error) {
	if name == "" || email == "" || dateLabel == "" {
		return "", ErrBadRequest
	}

	existing, err := s.store.FindByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		r := &Rider{
			Name:         name,
			Email:        email,
			Availability: map[string][]Slot{dateLabel: {slot}},
			Divisions:    MergeDivisions(nil, divisions),
		}
		return s.store.Create(ctx, r)
	}
	if err != nil {
		return "", err
	}

	dateKey, ok := existing.DateKey(dateLabel)
	if !ok {
		dateKey = dateLabel
	}
	slots := append(existing.Availability[dateKey], slot)
	merged := MergeDivisions(existing.Divisions, divisions)
	if err := s.store.SetDay(ctx, existing.ID, dateKey, slots, merged); err != nil {
		return "", fmt.Errorf("augment rider %s: %w", existing.ID, err)
	}
	return existing.ID, nil
}
