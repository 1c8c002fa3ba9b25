package repository

import (
	"context"
	"regexp"
	"testing"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", PasswordHash: "$2a$06$hash"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	err := repo.Create(ctx, user)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
			WithArgs("alice", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).
				AddRow(3, "alice", "$2a$06$hash"))

		user, err := repo.GetByUsername(ctx, "alice")
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uint(3), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss is nil without error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
			WithArgs("nobody", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}))

		user, err := repo.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE user_id = $1`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	posts, err := repo.CountPosts(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), posts)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "saved_posts" WHERE user_id = $1`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	saves, err := repo.CountSaves(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), saves)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsernameTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		taken    bool
	}{
		{"taken", "alice", true},
		{"free", "bob", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`)).
				WithArgs(tt.username).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.taken))

			taken, err := UsernameTaken(ctx, db, tt.username)
			assert.NoError(t, err)
			assert.Equal(t, tt.taken, taken)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
