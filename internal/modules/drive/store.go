// README: Drive store backed by Firestore documents.
package drive

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

var ErrNotFound = errors.New("drive not found")

const collection = "drives"

type Store interface {
	GetAll(ctx context.Context) ([]Drive, error)
	GetByID(ctx context.Context, id types.ID) (*Drive, error)
	Create(ctx context.Context, d *Drive) (types.ID, error)
	// UpdateAssignments partially updates the assignment bookkeeping
	// fields (paired riders, remaining capacity, status) only.
	UpdateAssignments(ctx context.Context, d *Drive) error
	Delete(ctx context.Context, id types.ID) error
}

type FirestoreStore struct {
	client *firestore.Client
}

func NewStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) GetAll(ctx context.Context) ([]Drive, error) {
	var drives []Drive
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate drives: %w", err)
		}
		var d Drive
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode drive %s: %w", doc.Ref.ID, err)
		}
		d.ID = types.ID(doc.Ref.ID)
		drives = append(drives, d)
	}
	return drives, nil
}

func (s *FirestoreStore) GetByID(ctx context.Context, id types.ID) (*Drive, error) {
	doc, err := s.client.Collection(collection).Doc(string(id)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get drive %s: %w", id, err)
	}
	var d Drive
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("decode drive %s: %w", id, err)
	}
	d.ID = types.ID(doc.Ref.ID)
	return &d, nil
}

func (s *FirestoreStore) Create(ctx context.Context, d *Drive) (types.ID, error) {
	id := uuid.NewString()
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, d); err != nil {
		return "", fmt.Errorf("create drive: %w", err)
	}
	d.ID = types.ID(id)
	return d.ID, nil
}

func (s *FirestoreStore) UpdateAssignments(ctx context.Context, d *Drive) error {
	_, err := s.client.Collection(collection).Doc(string(d.ID)).Update(ctx, []firestore.Update{
		{Path: "paired_riders", Value: d.PairedRiders},
		{Path: "remaining_capacity", Value: d.RemainingCapacity},
		{Path: "status", Value: d.Status},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update drive %s assignments: %w", d.ID, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id types.ID) error {
	_, err := s.client.Collection(collection).Doc(string(id)).Delete(ctx)
	if err != nil {
		return fmt.Errorf("delete drive %s: %w", id, err)
	}
	return nil
}
