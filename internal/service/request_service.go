package service

import (
	"context"
	"errors"
	"fmt"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
)

// SendResult is the outcome of sending a connection request.
type SendResult struct {
	Request *domain.ConnectionRequest
	Message string
}

// ReceivedRequest pairs a pending request with its sender's profile.
type ReceivedRequest struct {
	Request domain.ConnectionRequest
	From    domain.User
}

// RequestService drives the connection-request lifecycle: a sender opens a
// request as interested or ignored, the recipient may move an interested one
// to accepted or rejected, nothing else moves.
type RequestService interface {
	Send(ctx context.Context, actorID, targetID int64, status domain.RequestStatus) (*SendResult, error)
	Review(ctx context.Context, actorID, requestID int64, status domain.RequestStatus) (*domain.ConnectionRequest, error)
	Received(ctx context.Context, actorID int64) ([]ReceivedRequest, error)
	Connections(ctx context.Context, actorID int64) ([]domain.User, error)
}

type requestService struct {
	requests repository.RequestRepository
	users    repository.UserRepository
}

func NewRequestService(requests repository.RequestRepository, users repository.UserRepository) RequestService {
	return &requestService{
		requests: requests,
		users:    users,
	}
}

func (s *requestService) Send(ctx context.Context, actorID, targetID int64, status domain.RequestStatus) (*SendResult, error) {
	if !status.IsCreation() {
		return nil, fmt.Errorf("%w: invalid status type: %s", ErrInvalidArgument, status)
	}
	if targetID == actorID {
		return nil, fmt.Errorf("%w: cannot send a connection request to yourself", ErrInvalidArgument)
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	request := &domain.ConnectionRequest{
		FromUserID: actorID,
		ToUserID:   targetID,
		Status:     status,
	}
	if _, err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: connection request already exists", ErrConflict)
		}
		return nil, err
	}

	return &SendResult{
		Request: request,
		Message: fmt.Sprintf("%s is %s %s", actor.FirstName, status, target.FirstName),
	}, nil
}

func (s *requestService) Review(ctx context.Context, actorID, requestID int64, status domain.RequestStatus) (*domain.ConnectionRequest, error) {
	if !status.IsReview() {
		return nil, fmt.Errorf("%w: status not allowed: %s", ErrInvalidArgument, status)
	}

	request, err := s.requests.Review(ctx, requestID, actorID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// One answer for missing id, wrong recipient and wrong state, so
			// callers cannot probe other users' request ids.
			return nil, fmt.Errorf("%w: connection request", ErrNotFound)
		}
		return nil, err
	}
	return request, nil
}

func (s *requestService) Received(ctx context.Context, actorID int64) ([]ReceivedRequest, error) {
	requests, err := s.requests.ListReceived(ctx, actorID, domain.RequestStatusInterested)
	if err != nil {
		return nil, err
	}

	received := make([]ReceivedRequest, 0, len(requests))
	for _, request := range requests {
		from, err := s.users.GetByID(ctx, request.FromUserID)
		if err != nil {
			return nil, err
		}
		received = append(received, ReceivedRequest{
			Request: request,
			From:    *sanitizeUser(from),
		})
	}
	return received, nil
}

func (s *requestService) Connections(ctx context.Context, actorID int64) ([]domain.User, error) {
	requests, err := s.requests.ListForUser(ctx, actorID, domain.RequestStatusAccepted)
	if err != nil {
		return nil, err
	}

	connections := make([]domain.User, 0, len(requests))
	for _, request := range requests {
		counterpart, err := s.users.GetByID(ctx, request.CounterpartOf(actorID))
		if err != nil {
			return nil, err
		}
		connections = append(connections, *sanitizeUser(counterpart))
	}
	return connections, nil
}
