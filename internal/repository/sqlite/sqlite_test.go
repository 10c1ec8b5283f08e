package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
)

func openTestRepos(t *testing.T) (repository.UserRepository, repository.RequestRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := NewUserRepository(db)
	requests := NewRequestRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, requests.Init(context.Background()))
	return users, requests
}

func createTestUser(t *testing.T, users repository.UserRepository, firstName, email string) int64 {
	t.Helper()

	id, err := users.Create(context.Background(), &domain.User{
		FirstName:    firstName,
		LastName:     "Tester",
		Email:        email,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}
