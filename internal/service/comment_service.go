package service

import (
	"context"
	"strings"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/pipeline"
	"quill/internal/repository"
	"quill/internal/threads"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const maxCommentLen = 500

// CommentService executes comment commands.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// CreateComment is the comment submission payload. PostID comes from the
// route, the rest from the request body.
type CreateComment struct {
	PostID   uint    `json:"-"`
	ParentID *uint   `json:"comment_id"`
	Body     *string `json:"body"`

	body string

	// Store checks; tests may override them.
	postExists    func(ctx context.Context, db *gorm.DB, id uint) (bool, error)
	commentInPost func(ctx context.Context, db *gorm.DB, commentID, postID uint) (bool, error)
}

func (p *CreateComment) Check() *models.FieldError {
	if p.Body == nil || strings.TrimSpace(*p.Body) == "" {
		return models.NewFieldError("body", "Comment is required")
	}

	p.body = strings.TrimSpace(*p.Body)

	if len(p.body) > maxCommentLen {
		return models.NewFieldError("body", "Comment should not be more than 500 characters")
	}
	return nil
}

// CheckStore verifies the target post exists and, for replies, that the
// parent comment belongs to that same post. A parent from a different post is
// rejected even when the parent id itself is valid.
func (p *CreateComment) CheckStore(ctx context.Context, db *gorm.DB, _ *auth.Identity) *models.FieldError {
	exists := p.postExists
	if exists == nil {
		exists = repository.PostExists
	}
	inPost := p.commentInPost
	if inPost == nil {
		inPost = repository.CommentInPost
	}

	ok, err := exists(ctx, db, p.PostID)
	if err != nil {
		return models.NewFieldError("post_id", "Cannot verify post")
	}
	if !ok {
		return models.NewFieldError("post_id", "Post does not exists")
	}

	if p.ParentID != nil {
		ok, err := inPost(ctx, db, *p.ParentID, p.PostID)
		if err != nil {
			return models.NewFieldError("comment_id", "Cannot verify parent comment")
		}
		if !ok {
			return models.NewFieldError("comment_id", "Comment does not exists in post")
		}
	}
	return nil
}

// Create inserts the comment and returns its id.
func (s *CommentService) Create(ctx context.Context, cmd pipeline.Command[*CreateComment]) (uint, error) {
	p := cmd.Payload()

	comment := &models.Comment{
		PostID:   p.PostID,
		UserID:   cmd.Caller().ID,
		ParentID: p.ParentID,
		Body:     p.body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return 0, err
	}
	return comment.ID, nil
}

// FetchComments requests one post's comment tree in a given order.
type FetchComments struct {
	PostID uint
	Sort   string

	mode threads.SortMode
}

func (p *FetchComments) Check() *models.FieldError {
	if p.PostID == 0 {
		return models.NewFieldError("id", "Invalid post id")
	}
	mode, ok := threads.ParseSortMode(p.Sort)
	if !ok {
		return models.NewFieldError("sort", "Invalid sort mode")
	}
	p.mode = mode
	return nil
}

// Thread returns the post's full comment tree. The existence probe and the
// flat thread fetch are independent reads, so they run concurrently.
func (s *CommentService) Thread(ctx context.Context, cmd pipeline.Command[*FetchComments]) ([]*threads.Node, error) {
	p := cmd.Payload()

	var (
		exists bool
		rows   []threads.Row
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exists, err = s.posts.Exists(gctx, p.PostID)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.comments.ListThread(gctx, p.PostID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}

	return threads.Build(rows, p.mode), nil
}
