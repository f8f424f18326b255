package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hserranome/drawaday-api/internal/models"
	"github.com/hserranome/drawaday-api/internal/repositories"
)

// newSQLiteRepo opens a fresh in-memory database per test so state
// never leaks between tests.
func newSQLiteRepo(t *testing.T) *repositories.GORMUserRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))
	return repositories.NewGORMUserRepository(db)
}

// Both implementations must behave identically, so the same suite runs
// against each.
func runUserRepositoryTests(t *testing.T, newRepo func(t *testing.T) repositories.UserRepository) {
	t.Run("CreateAssignsID", func(t *testing.T) {
		repo := newRepo(t)
		user := &models.User{Email: "a@example.com", Password: "digest"}
		assert.NoError(t, repo.Create(user))
		assert.NotEmpty(t, user.ID)
	})

	t.Run("GetByEmailIsCaseInsensitive", func(t *testing.T) {
		repo := newRepo(t)
		user := &models.User{Email: "Mixed@Example.com", Password: "digest"}
		assert.NoError(t, repo.Create(user))

		found, err := repo.GetByEmail("mixed@example.com")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "mixed@example.com", found.Email)

		found, err = repo.GetByEmail("MIXED@EXAMPLE.COM")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("GetByEmailNotFound", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByEmail("nobody@example.com")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("GetByID", func(t *testing.T) {
		repo := newRepo(t)
		user := &models.User{Email: "b@example.com", Password: "digest"}
		assert.NoError(t, repo.Create(user))

		found, err := repo.GetByID(user.ID)
		assert.NoError(t, err)
		assert.Equal(t, "b@example.com", found.Email)

		_, err = repo.GetByID("missing-id")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.Create(&models.User{Email: "dup@example.com", Password: "digest"}))

		err := repo.Create(&models.User{Email: "dup@example.com", Password: "other"})
		assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)

		// Uniqueness holds across casing too.
		err = repo.Create(&models.User{Email: "DUP@example.com", Password: "other"})
		assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	})
}

func TestGORMUserRepository(t *testing.T) {
	runUserRepositoryTests(t, func(t *testing.T) repositories.UserRepository {
		return newSQLiteRepo(t)
	})
}

func TestMockUserRepository(t *testing.T) {
	runUserRepositoryTests(t, func(t *testing.T) repositories.UserRepository {
		return repositories.NewMockUserRepository()
	})
}
