package repository

import (
	"context"
	"testing"
	"time"

	"feedline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    email,
		Name:     "Test User",
		Password: "hashed-password",
		Status:   models.DefaultStatus,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "test@example.com")

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "test@example.com", got.Email)
	assert.Equal(t, models.DefaultStatus, got.Status)

	got, err = repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRepository_NotFoundReturnsNilNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "dup@example.com")

	err := repo.Create(ctx, &models.User{
		Email:    "dup@example.com",
		Name:     "Other User",
		Password: "hashed-password",
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "Email already exists!", appErr.Message)
}

func TestUserRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "test@example.com")
	user.Status = "Shipping"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shipping", got.Status)
}

func TestUserRepository_DeleteAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "a@example.com")
	createTestUser(t, repo, "b@example.com")

	require.NoError(t, repo.DeleteAll(ctx))

	got, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_GetByIDWithPosts(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, userRepo, "author@example.com")
	other := createTestUser(t, userRepo, "other@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, postRepo.Create(ctx, &models.Post{
			Title:     "title here",
			Content:   "content here",
			ImageURL:  "/images/a.png",
			CreatorID: user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, postRepo.Create(ctx, &models.Post{
		Title:     "not mine",
		Content:   "content here",
		ImageURL:  "/images/b.png",
		CreatorID: other.ID,
	}))

	got, err := userRepo.GetByIDWithPosts(ctx, user.ID, 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Posts, 3)
	for _, p := range got.Posts {
		assert.Equal(t, user.ID, p.CreatorID)
	}

	// Deleting a post shrinks the owned set
	require.NoError(t, postRepo.Delete(ctx, got.Posts[0].ID))

	got, err = userRepo.GetByIDWithPosts(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, got.Posts, 2)

	// Limit caps the preloaded page
	got, err = userRepo.GetByIDWithPosts(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, got.Posts, 1)
}
