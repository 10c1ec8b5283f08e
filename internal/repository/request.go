package repository

import (
	"context"

	"devmatch/internal/domain"
)

// RequestRepository exposes persistence operations for connection requests.
type RequestRepository interface {
	Init(ctx context.Context) error
	// Create inserts a new request. It returns ErrDuplicate when a record for
	// the same user pair already exists in either direction.
	Create(ctx context.Context, request *domain.ConnectionRequest) (int64, error)
	Get(ctx context.Context, id int64) (*domain.ConnectionRequest, error)
	// Review atomically moves an interested request addressed to recipientID
	// into the given status. It returns ErrNotFound when no row matches the
	// (id, recipient, interested) condition, without saying which part failed.
	Review(ctx context.Context, id, recipientID int64, status domain.RequestStatus) (*domain.ConnectionRequest, error)
	// ListReceived returns requests addressed to toUserID in the given status.
	ListReceived(ctx context.Context, toUserID int64, status domain.RequestStatus) ([]domain.ConnectionRequest, error)
	// ListForUser returns requests in the given status where userID is either
	// endpoint.
	ListForUser(ctx context.Context, userID int64, status domain.RequestStatus) ([]domain.ConnectionRequest, error)
	// CounterpartIDs returns the ids of every user tied to userID by a request
	// in any status, in either direction.
	CounterpartIDs(ctx context.Context, userID int64) ([]int64, error)
}
