// README: Drive service: creation fan-out, self-service signup, capacity bookkeeping.
package drive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"carpools/internal/maps"
	"carpools/internal/modules/journal"
	"carpools/internal/modules/region"
	"carpools/internal/modules/rider"
	"carpools/internal/modules/schedule"
	"carpools/internal/types"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrOutsideServiceArea = errors.New("address not in supported region")
	ErrDriveFull          = errors.New("drive is full")
)

// Classifier maps a pickup point to zero or more zones.
type Classifier interface {
	Classify(address string, lat, lng float64) []string
}

// RiderDirectory is the slice of the rider service the signup path needs.
type RiderDirectory interface {
	AugmentDay(ctx context.Context, name, email, dateLabel string, slot rider.Slot, divisions map[string]bool) (types.ID, error)
}

type Service struct {
	store        Store
	geocoder     maps.Geocoder
	classifier   Classifier
	riders       RiderDirectory
	journal      *journal.Journal
	defaultSeats int
	log          *zap.Logger
}

func NewService(store Store, geocoder maps.Geocoder, classifier Classifier, riders RiderDirectory, jnl *journal.Journal, defaultSeats int, log *zap.Logger) *Service {
	if defaultSeats <= 0 {
		defaultSeats = 1
	}
	return &Service{
		store:        store,
		geocoder:     geocoder,
		classifier:   classifier,
		riders:       riders,
		journal:      jnl,
		defaultSeats: defaultSeats,
		log:          log,
	}
}

type SlotSpec struct {
	Start    string
	End      string
	Capacity int // 0 means the configured default
}

type DateSlots struct {
	Date  string
	Slots []SlotSpec
}

type CreateCommand struct {
	DriverName    string
	DriverEmail   string
	DriverPhone   string
	PickupAddress string
	PerDateSlots  []DateSlots
}

// Create geocodes and classifies the pickup address, then fans the payload
// out into one Drive per (date, slot). Rejection happens before any write:
// an unresolvable address or an Unknown region creates nothing.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) ([]*Drive, error) {
	if cmd.DriverName == "" || cmd.DriverEmail == "" || cmd.PickupAddress == "" || len(cmd.PerDateSlots) == 0 {
		return nil, ErrBadRequest
	}

	point, err := s.geocoder.Geocode(ctx, cmd.PickupAddress)
	if err != nil {
		if errors.Is(err, maps.ErrAddressNotFound) {
			return nil, ErrInvalidAddress
		}
		return nil, fmt.Errorf("geocode pickup: %w", err)
	}
	regions := s.classifier.Classify(cmd.PickupAddress, point.Lat, point.Lng)
	if region.ContainsUnknown(regions) {
		return nil, ErrOutsideServiceArea
	}

	var created []*Drive
	for _, day := range cmd.PerDateSlots {
		for _, spec := range day.Slots {
			capacity := spec.Capacity
			if capacity <= 0 {
				capacity = s.defaultSeats
			}
			d := &Drive{
				DriverName:        cmd.DriverName,
				DriverEmail:       cmd.DriverEmail,
				DriverPhone:       cmd.DriverPhone,
				Address:           cmd.PickupAddress,
				Pickup:            point,
				Regions:           regions,
				Date:              day.Date,
				Start:             spec.Start,
				End:               spec.End,
				TotalCapacity:     capacity,
				RemainingCapacity: capacity,
				Status:            StatusAvailable,
				CreatedAt:         time.Now(),
			}
			if _, err := s.store.Create(ctx, d); err != nil {
				return created, err
			}
			created = append(created, d)
		}
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Drive, error) {
	return s.store.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Drive, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}

type SignupCommand struct {
	Name      string
	Email     string
	Date      string
	Start     string
	End       string
	Divisions map[string]bool
}

// Signup adds a rider to a drive they explicitly chose. It re-enters the
// same capacity bookkeeping as engine write-back but skips the fairness
// filter: the rider is opting in, not being selected. The caller is
// assumed to serialize concurrent writers per drive.
func (s *Service) Signup(ctx context.Context, driveID types.ID, cmd SignupCommand) (*Drive, types.ID, error) {
	if cmd.Name == "" || cmd.Email == "" || cmd.Date == "" {
		return nil, "", ErrBadRequest
	}

	d, err := s.store.GetByID(ctx, driveID)
	if err != nil {
		return nil, "", err
	}
	if d.RemainingCapacity <= 0 {
		return nil, "", ErrDriveFull
	}

	riderID, err := s.riders.AugmentDay(ctx, cmd.Name, cmd.Email, cmd.Date,
		rider.Slot{Start: cmd.Start, End: cmd.End, DriveID: d.ID}, cmd.Divisions)
	if err != nil {
		return nil, "", fmt.Errorf("signup availability: %w", err)
	}

	if d.RecordRider(riderID) {
		if err := s.store.UpdateAssignments(ctx, d); err != nil {
			return nil, "", err
		}
		week, parsed := schedule.WeekOf(d.Date, time.Now())
		if !parsed {
			s.log.Warn("signup: drive date fell back to current week", zap.String("date", d.Date))
		}
		if err := s.journal.Append(ctx, journal.PairingEvent{
			DriveID:   d.ID,
			RiderID:   riderID,
			Week:      week,
			Via:       journal.ViaSelfSignup,
			CreatedAt: time.Now(),
		}); err != nil {
			s.log.Warn("pairing journal append failed", zap.Error(err))
		}
	}
	return d, riderID, nil
}
