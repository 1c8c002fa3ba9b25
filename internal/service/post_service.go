package service

import (
	"context"
	"strings"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/pipeline"
	"quill/internal/repository"
	"quill/internal/validation"

	"gorm.io/gorm"
)

const (
	maxTitleLen = 100
	maxBodyLen  = 1000

	defaultPageSize = 20
	maxPageSize     = 100
)

// viewerID maps an optional identity to the repository's viewer argument,
// where 0 means anonymous.
func viewerID(caller *auth.Identity) uint {
	if caller == nil {
		return 0
	}
	return caller.ID
}

// PostService executes post commands.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePost is the post submission payload.
type CreatePost struct {
	Title  *string  `json:"title"`
	Body   *string  `json:"body"`
	Topics []string `json:"topics"`

	title  string
	body   string
	topics []string
}

// Check validates and normalizes the submission. Topic names are canonicalized
// and deduplicated here so the executor only ever sees clean names.
func (p *CreatePost) Check() *models.FieldError {
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		return models.NewFieldError("title", "Title is required")
	}
	if p.Body == nil || strings.TrimSpace(*p.Body) == "" {
		return models.NewFieldError("body", "Body is required")
	}

	p.title = strings.TrimSpace(*p.Title)
	p.body = strings.TrimSpace(*p.Body)

	if len(p.title) > maxTitleLen {
		return models.NewFieldError("title", "Title should not be more than 100 characters")
	}
	if len(p.body) > maxBodyLen {
		return models.NewFieldError("body", "Body should not be more than 1000 characters")
	}

	p.topics = validation.NormalizeTopics(p.Topics)
	if len(p.topics) == 0 {
		return models.NewFieldError("topics", "At least one topic is required")
	}
	for _, name := range p.topics {
		if len(name) > validation.MaxTopicNameLen {
			return models.NewFieldError("topics", "Topic names should not be more than 50 characters")
		}
	}
	return nil
}

// Create inserts the post with its topics and returns the new post id.
func (s *PostService) Create(ctx context.Context, cmd pipeline.Command[*CreatePost]) (uint, error) {
	p := cmd.Payload()

	post := &models.Post{
		Title:  p.title,
		Body:   p.body,
		UserID: cmd.Caller().ID,
	}
	if err := s.posts.CreateWithTopics(ctx, post, p.topics); err != nil {
		return 0, err
	}
	return post.ID, nil
}

// FetchPosts is the front-page listing payload. Check clamps paging instead
// of rejecting it; a bad page request is not worth a round-trip error.
type FetchPosts struct {
	Limit  int
	Offset int
}

func (p *FetchPosts) Check() *models.FieldError {
	if p.Limit <= 0 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return nil
}

// List returns a page of posts, newest first. Signed-in viewers get the
// per-viewer saved flag.
func (s *PostService) List(ctx context.Context, cmd pipeline.Command[*FetchPosts]) ([]*models.PostResponse, error) {
	p := cmd.Payload()
	return s.posts.List(ctx, viewerID(cmd.Caller()), p.Limit, p.Offset)
}

// FetchPost targets a single post by id.
type FetchPost struct {
	ID uint
}

func (p *FetchPost) Check() *models.FieldError {
	if p.ID == 0 {
		return models.NewFieldError("id", "Invalid post id")
	}
	return nil
}

func (s *PostService) Get(ctx context.Context, cmd pipeline.Command[*FetchPost]) (*models.PostResponse, error) {
	return s.posts.GetByID(ctx, cmd.Payload().ID, viewerID(cmd.Caller()))
}

// SavePost targets a post for bookmarking or unbookmarking.
type SavePost struct {
	PostID uint
}

func (p *SavePost) Check() *models.FieldError {
	if p.PostID == 0 {
		return models.NewFieldError("id", "Invalid post id")
	}
	return nil
}

// Save bookmarks the post for the caller. Saving twice is a no-op.
func (s *PostService) Save(ctx context.Context, cmd pipeline.Command[*SavePost]) error {
	p := cmd.Payload()

	exists, err := s.posts.Exists(ctx, p.PostID)
	if err != nil {
		return err
	}
	if !exists {
		return gorm.ErrRecordNotFound
	}
	return s.posts.Save(ctx, cmd.Caller().ID, p.PostID)
}

// Unsave removes the caller's bookmark. Removing a bookmark that never
// existed succeeds.
func (s *PostService) Unsave(ctx context.Context, cmd pipeline.Command[*SavePost]) error {
	p := cmd.Payload()

	exists, err := s.posts.Exists(ctx, p.PostID)
	if err != nil {
		return err
	}
	if !exists {
		return gorm.ErrRecordNotFound
	}
	return s.posts.Unsave(ctx, cmd.Caller().ID, p.PostID)
}

// FetchUserPosts lists one author's posts or one user's saved posts.
type FetchUserPosts struct {
	UserID uint
}

func (p *FetchUserPosts) Check() *models.FieldError {
	if p.UserID == 0 {
		return models.NewFieldError("id", "Invalid user id")
	}
	return nil
}

func (s *PostService) ByAuthor(ctx context.Context, cmd pipeline.Command[*FetchUserPosts]) ([]*models.PostResponse, error) {
	return s.posts.ListByAuthor(ctx, cmd.Payload().UserID, viewerID(cmd.Caller()))
}

func (s *PostService) SavedBy(ctx context.Context, cmd pipeline.Command[*FetchUserPosts]) ([]*models.PostResponse, error) {
	return s.posts.ListSavedBy(ctx, cmd.Payload().UserID, viewerID(cmd.Caller()))
}
