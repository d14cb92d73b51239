package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/repository"
	"vehiql/pkg/errors"
)

// The dealership is a singleton document.
const dealershipDocID = "primary"

type firestoreDealershipRepository struct {
	client *firestore.Client
}

func NewFirestoreDealershipRepository(client *firestore.Client) repository.DealershipRepository {
	return &firestoreDealershipRepository{
		client: client,
	}
}

func (r *firestoreDealershipRepository) doc() *firestore.DocumentRef {
	return r.client.Collection("dealerships").Doc(dealershipDocID)
}

func (r *firestoreDealershipRepository) Get(ctx context.Context) (*entity.Dealership, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Dealership", err)
		}
		return nil, errors.Internal("Failed to get dealership", err)
	}

	var dealership entity.Dealership
	if err := snap.DataTo(&dealership); err != nil {
		return nil, errors.Internal("Failed to decode dealership", err)
	}
	dealership.ID = snap.Ref.ID

	return &dealership, nil
}

func (r *firestoreDealershipRepository) Save(ctx context.Context, dealership *entity.Dealership) error {
	now := time.Now()
	dealership.ID = dealershipDocID
	if dealership.CreatedAt.IsZero() {
		dealership.CreatedAt = now
	}
	dealership.UpdatedAt = now

	if _, err := r.doc().Set(ctx, dealership); err != nil {
		return errors.Internal("Failed to save dealership", err)
	}
	return nil
}

// UpdateWorkingHours replaces the whole schedule in a single write.
func (r *firestoreDealershipRepository) UpdateWorkingHours(ctx context.Context, hours []entity.WorkingHour) error {
	_, err := r.doc().Update(ctx, []firestore.Update{
		{Path: "workingHours", Value: hours},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Dealership", err)
		}
		return errors.Internal("Failed to update working hours", err)
	}
	return nil
}
