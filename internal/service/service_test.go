package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
	"devmatch/internal/repository/sqlite"
)

type testEnv struct {
	users    UserService
	requests RequestService
	feed     FeedService
	userRepo repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	requestRepo := sqlite.NewRequestRepository(db)
	require.NoError(t, userRepo.Init(context.Background()))
	require.NoError(t, requestRepo.Init(context.Background()))

	return &testEnv{
		users:    NewUserService(userRepo),
		requests: NewRequestService(requestRepo, userRepo),
		feed:     NewFeedService(userRepo, requestRepo),
		userRepo: userRepo,
	}
}

func (e *testEnv) register(t *testing.T, firstName, email string) *domain.User {
	t.Helper()

	user, err := e.users.Register(context.Background(), RegisterInput{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Password:  "secret-password",
	})
	require.NoError(t, err)
	return user
}

// insert seeds a user straight through the repository, skipping the bcrypt
// hash, for tests that only need directory rows.
func (e *testEnv) insert(t *testing.T, firstName, email string) int64 {
	t.Helper()

	id, err := e.userRepo.Create(context.Background(), &domain.User{
		FirstName:    firstName,
		LastName:     "Tester",
		Email:        email,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}
