package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/pipeline"
	"quill/internal/repository"

	"golang.org/x/sync/errgroup"
)

// UserService executes profile lookups.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// FetchUser targets one account by id.
type FetchUser struct {
	UserID uint
}

func (p *FetchUser) Check() *models.FieldError {
	if p.UserID == 0 {
		return models.NewFieldError("id", "Invalid user id")
	}
	return nil
}

// Profile assembles a user's public profile. The account row and the two
// aggregate counts are independent reads, so they run concurrently.
func (s *UserService) Profile(ctx context.Context, cmd pipeline.Command[*FetchUser]) (*models.UserProfile, error) {
	id := cmd.Payload().UserID

	var (
		user  *models.User
		posts int64
		saves int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.users.CountPosts(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		saves, err = s.users.CountSaves(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		Posts:     posts,
		Saves:     saves,
	}, nil
}
