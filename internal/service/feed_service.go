package service

import (
	"context"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
)

const (
	// DefaultFeedPageSize applies when the caller requests no (or a
	// non-positive) page size.
	DefaultFeedPageSize = 10
	// MaxFeedPageSize caps how many profiles a single feed page may return.
	MaxFeedPageSize = 50
)

// FeedService selects candidate profiles for a user. Anyone tied to the
// caller by a connection request in any status stays hidden, in both
// directions, along with the caller themselves.
type FeedService interface {
	Feed(ctx context.Context, actorID int64, page, pageSize int) ([]domain.User, error)
}

type feedService struct {
	users    repository.UserRepository
	requests repository.RequestRepository
}

func NewFeedService(users repository.UserRepository, requests repository.RequestRepository) FeedService {
	return &feedService{
		users:    users,
		requests: requests,
	}
}

func (s *feedService) Feed(ctx context.Context, actorID int64, page, pageSize int) ([]domain.User, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultFeedPageSize
	}
	if pageSize > MaxFeedPageSize {
		pageSize = MaxFeedPageSize
	}

	exclude, err := s.requests.CounterpartIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	exclude = append(exclude, actorID)

	offset := (page - 1) * pageSize
	users, err := s.users.ListExcluding(ctx, exclude, offset, pageSize)
	if err != nil {
		return nil, err
	}

	feed := make([]domain.User, 0, len(users))
	for i := range users {
		feed = append(feed, *sanitizeUser(&users[i]))
	}
	return feed, nil
}
