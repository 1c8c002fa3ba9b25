package service

import (
	"context"
	"testing"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/pipeline"
	"quill/internal/threads"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mustCommand pushes a payload through the full pipeline with an inert store
// handle. Payloads with store checks must have their check funcs overridden
// first.
func mustCommand[P pipeline.Payload](t *testing.T, payload P, caller *auth.Identity) pipeline.Command[P] {
	t.Helper()

	bound, err := pipeline.NewRequest(payload).Bind(&gorm.DB{})
	require.NoError(t, err)

	if caller == nil {
		cmd, ferr := bound.Validate(context.Background())
		require.Nil(t, ferr)
		return cmd
	}

	authed, err := bound.Authenticate(caller)
	require.NoError(t, err)
	cmd, ferr := authed.Validate(context.Background())
	require.Nil(t, ferr)
	return cmd
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

type stubUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	countPostsFn    func(ctx context.Context, userID uint) (int64, error)
	countSavesFn    func(ctx context.Context, userID uint) (int64, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) CountPosts(ctx context.Context, userID uint) (int64, error) {
	return s.countPostsFn(ctx, userID)
}

func (s *stubUserRepo) CountSaves(ctx context.Context, userID uint) (int64, error) {
	return s.countSavesFn(ctx, userID)
}

type stubPostRepo struct {
	createWithTopicsFn func(ctx context.Context, post *models.Post, topicNames []string) error
	listFn             func(ctx context.Context, viewerID uint, limit, offset int) ([]*models.PostResponse, error)
	getByIDFn          func(ctx context.Context, id, viewerID uint) (*models.PostResponse, error)
	listByAuthorFn     func(ctx context.Context, authorID, viewerID uint) ([]*models.PostResponse, error)
	listSavedByFn      func(ctx context.Context, userID, viewerID uint) ([]*models.PostResponse, error)
	existsFn           func(ctx context.Context, id uint) (bool, error)
	saveFn             func(ctx context.Context, userID, postID uint) error
	unsaveFn           func(ctx context.Context, userID, postID uint) error
}

func (s *stubPostRepo) CreateWithTopics(ctx context.Context, post *models.Post, topicNames []string) error {
	return s.createWithTopicsFn(ctx, post, topicNames)
}

func (s *stubPostRepo) List(ctx context.Context, viewerID uint, limit, offset int) ([]*models.PostResponse, error) {
	return s.listFn(ctx, viewerID, limit, offset)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id, viewerID uint) (*models.PostResponse, error) {
	return s.getByIDFn(ctx, id, viewerID)
}

func (s *stubPostRepo) ListByAuthor(ctx context.Context, authorID, viewerID uint) ([]*models.PostResponse, error) {
	return s.listByAuthorFn(ctx, authorID, viewerID)
}

func (s *stubPostRepo) ListSavedBy(ctx context.Context, userID, viewerID uint) ([]*models.PostResponse, error) {
	return s.listSavedByFn(ctx, userID, viewerID)
}

func (s *stubPostRepo) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func (s *stubPostRepo) Save(ctx context.Context, userID, postID uint) error {
	return s.saveFn(ctx, userID, postID)
}

func (s *stubPostRepo) Unsave(ctx context.Context, userID, postID uint) error {
	return s.unsaveFn(ctx, userID, postID)
}

type stubCommentRepo struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	listThreadFn func(ctx context.Context, postID uint) ([]threads.Row, error)
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}

func (s *stubCommentRepo) ListThread(ctx context.Context, postID uint) ([]threads.Row, error) {
	return s.listThreadFn(ctx, postID)
}

type stubTopicRepo struct {
	trendingFn func(ctx context.Context, window string, limit int) ([]models.TopicRef, error)
}

func (s *stubTopicRepo) Trending(ctx context.Context, window string, limit int) ([]models.TopicRef, error) {
	return s.trendingFn(ctx, window, limit)
}
