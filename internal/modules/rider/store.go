// README: Rider store backed by Firestore documents.
package rider

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carpools/internal/types"
)

var ErrNotFound = errors.New("rider not found")

const collection = "riders"

// Store is the narrow document-store surface the services consume.
// Updates are partial merges of the named fields, never full overwrites.
type Store interface {
	GetAll(ctx context.Context) ([]Rider, error)
	GetByID(ctx context.Context, id types.ID) (*Rider, error)
	FindByName(ctx context.Context, name string) (*Rider, error)
	Create(ctx context.Context, r *Rider) (types.ID, error)
	UpdateProfile(ctx context.Context, id types.ID, email string, availability map[string][]Slot, divisions map[string]bool) error
	SetDay(ctx context.Context, id types.ID, dateKey string, slots []Slot, divisions map[string]bool) error
	DeleteDay(ctx context.Context, id types.ID, dateKey string) error
	Delete(ctx context.Context, id types.ID) error
}

type FirestoreStore struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) GetAll(ctx context.Context) ([]Rider, error) {
	var riders []Rider
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate riders: %w", err)
		}
		var r Rider
		if err := doc.DataTo(&r); err != nil {
			return nil, fmt.Errorf("decode rider %s: %w", doc.Ref.ID, err)
		}
		r.ID = types.ID(doc.Ref.ID)
		riders = append(riders, r)
	}
	return riders, nil
}

func (s *FirestoreStore) GetByID(ctx context.Context, id types.ID) (*Rider, error) {
	doc, err := s.client.Collection(collection).Doc(string(id)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rider %s: %w", id, err)
	}
	var r Rider
	if err := doc.DataTo(&r); err != nil {
		return nil, fmt.Errorf("decode rider %s: %w", id, err)
	}
	r.ID = types.ID(doc.Ref.ID)
	return &r, nil
}

func (s *FirestoreStore) FindByName(ctx context.Context, name string) (*Rider, error) {
	iter := s.client.Collection(collection).Where("name", "==", name).Limit(1).Documents(ctx)
	defer iter.Stop()
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find rider by name: %w", err)
	}
	var r Rider
	if err := doc.DataTo(&r); err != nil {
		return nil, fmt.Errorf("decode rider %s: %w", doc.Ref.ID, err)
	}
	r.ID = types.ID(doc.Ref.ID)
	return &r, nil
}

func (s *FirestoreStore) Create(ctx context.Context, r *Rider) (types.ID, error) {
	id := uuid.NewString()
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, r); err != nil {
		return "", fmt.Errorf("create rider: %w", err)
	}
	r.ID = types.ID(id)
	return r.ID, nil
}

func (s *FirestoreStore) UpdateProfile(ctx context.Context, id types.ID, email string, availability map[string][]Slot, divisions map[string]bool) error {
	_, err := s.client.Collection(collection).Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "email", Value: email},
		{Path: "availability", Value: availability},
		{Path: "divisions", Value: divisions},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update rider %s: %w", id, err)
	}
	return nil
}

// SetDay writes one date's slot list and the merged division flags in a
// single partial update. Date labels may contain separators, so field
// paths are used rather than dotted path strings.
func (s *FirestoreStore) SetDay(ctx context.Context, id types.ID, dateKey string, slots []Slot, divisions map[string]bool) error {
	_, err := s.client.Collection(collection).Doc(string(id)).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"availability", dateKey}, Value: slots},
		{Path: "divisions", Value: divisions},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("set availability day for rider %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteDay(ctx context.Context, id types.ID, dateKey string) error {
	_, err := s.client.Collection(collection).Doc(string(id)).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"availability", dateKey}, Value: firestore.Delete},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete availability day for rider %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id types.ID) error {
	_, err := s.client.Collection(collection).Doc(string(id)).Delete(ctx)
	if err != nil {
		return fmt.Errorf("delete rider %s: %w", id, err)
	}
	return nil
}
