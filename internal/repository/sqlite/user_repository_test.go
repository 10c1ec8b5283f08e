package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
)

func TestUserCreate_DuplicateEmail(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	createTestUser(t, users, "Alice", "alice@example.com")
	_, err := users.Create(ctx, &domain.User{
		FirstName:    "Another",
		LastName:     "Alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserGet_RoundTrip(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	user := &domain.User{
		FirstName:    "Alice",
		LastName:     "Tester",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Age:          30,
		Gender:       "female",
		About:        "gopher",
		Skills:       []string{"go", "sql"},
		ProfilePic:   "https://example.com/a.png",
	}
	id, err := users.Create(ctx, user)
	require.NoError(t, err)

	byID, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.FirstName)
	assert.Equal(t, []string{"go", "sql"}, byID.Skills)

	byEmail, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)

	_, err = users.GetByID(ctx, id+100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserUpdateProfile(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	id := createTestUser(t, users, "Alice", "alice@example.com")
	user, err := users.GetByID(ctx, id)
	require.NoError(t, err)

	user.About = "updated"
	user.Skills = []string{"go"}
	require.NoError(t, users.UpdateProfile(ctx, user))

	stored, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "updated", stored.About)
	assert.Equal(t, []string{"go"}, stored.Skills)
}

// TestUserListExcluding verifies the feed query: stable id order, exclusion,
// and offset/limit windows that neither overlap nor skip.
func TestUserListExcluding(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	ids := make([]int64, 0, 5)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ids = append(ids, createTestUser(t, users, name, name+"@example.com"))
	}

	listed, err := users.ListExcluding(ctx, []int64{ids[1], ids[3]}, 0, 10)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []int64{ids[0], ids[2], ids[4]}, []int64{listed[0].ID, listed[1].ID, listed[2].ID})

	page1, err := users.ListExcluding(ctx, nil, 0, 2)
	require.NoError(t, err)
	page2, err := users.ListExcluding(ctx, nil, 2, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.Len(t, page2, 2)
	assert.Equal(t, ids[0], page1[0].ID)
	assert.Equal(t, ids[1], page1[1].ID)
	assert.Equal(t, ids[2], page2[0].ID)
	assert.Equal(t, ids[3], page2[1].ID)
}
