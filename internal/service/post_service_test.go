package service

import (
	"context"
	"strings"
	"testing"

	"quill/internal/auth"
	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreatePostCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload *CreatePost
		field   string
		message string
	}{
		{
			name:    "missing title",
			payload: &CreatePost{Body: strPtr("body"), Topics: []string{"go"}},
			field:   "title",
			message: "Title is required",
		},
		{
			name:    "missing body",
			payload: &CreatePost{Title: strPtr("title"), Topics: []string{"go"}},
			field:   "body",
			message: "Body is required",
		},
		{
			name:    "title too long",
			payload: &CreatePost{Title: strPtr(strings.Repeat("a", 101)), Body: strPtr("body"), Topics: []string{"go"}},
			field:   "title",
			message: "Title should not be more than 100 characters",
		},
		{
			name:    "body too long",
			payload: &CreatePost{Title: strPtr("title"), Body: strPtr(strings.Repeat("a", 1001)), Topics: []string{"go"}},
			field:   "body",
			message: "Body should not be more than 1000 characters",
		},
		{
			name:    "no topics",
			payload: &CreatePost{Title: strPtr("title"), Body: strPtr("body")},
			field:   "topics",
			message: "At least one topic is required",
		},
		{
			name:    "topics that normalize to nothing",
			payload: &CreatePost{Title: strPtr("title"), Body: strPtr("body"), Topics: []string{"123", "!!!"}},
			field:   "topics",
			message: "At least one topic is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ferr := tt.payload.Check()
			require.NotNil(t, ferr)
			assert.Equal(t, tt.field, ferr.Name)
			assert.Equal(t, tt.message, ferr.Message)
		})
	}

	t.Run("topics are canonicalized and deduplicated", func(t *testing.T) {
		t.Parallel()
		p := &CreatePost{
			Title:  strPtr("  A title  "),
			Body:   strPtr("body"),
			Topics: []string{"  c++ programming!! ", "C Programming", "go"},
		}
		require.Nil(t, p.Check())
		assert.Equal(t, "A title", p.title)
		assert.Equal(t, []string{"C programming", "Go"}, p.topics)
	})
}

func TestCreatePost(t *testing.T) {
	t.Parallel()

	var (
		gotPost   *models.Post
		gotTopics []string
	)
	repo := &stubPostRepo{
		createWithTopicsFn: func(_ context.Context, post *models.Post, topicNames []string) error {
			post.ID = 42
			gotPost = post
			gotTopics = topicNames
			return nil
		},
	}
	svc := NewPostService(repo)

	payload := &CreatePost{
		Title:  strPtr("A title"),
		Body:   strPtr("A body"),
		Topics: []string{"go", "databases"},
	}
	cmd := mustCommand(t, payload, &auth.Identity{ID: 9, Username: "alice"})

	id, err := svc.Create(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	require.NotNil(t, gotPost)
	assert.Equal(t, uint(9), gotPost.UserID)
	assert.Equal(t, "A title", gotPost.Title)
	assert.Equal(t, []string{"Go", "Databases"}, gotTopics)
}

func TestFetchPostsCheckClampsPaging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		limit, offset      int
		wantLimit, wantOff int
	}{
		{"defaults", 0, 0, defaultPageSize, 0},
		{"negative offset", 10, -5, 10, 0},
		{"oversized limit", 500, 40, maxPageSize, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &FetchPosts{Limit: tt.limit, Offset: tt.offset}
			require.Nil(t, p.Check())
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOff, p.Offset)
		})
	}
}

func TestListPostsViewer(t *testing.T) {
	t.Parallel()

	var gotViewer uint
	repo := &stubPostRepo{
		listFn: func(_ context.Context, viewerID uint, _, _ int) ([]*models.PostResponse, error) {
			gotViewer = viewerID
			return []*models.PostResponse{}, nil
		},
	}
	svc := NewPostService(repo)

	t.Run("anonymous viewer is zero", func(t *testing.T) {
		cmd := mustCommand(t, &FetchPosts{}, nil)
		_, err := svc.List(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, uint(0), gotViewer)
	})

	t.Run("signed-in viewer is forwarded", func(t *testing.T) {
		cmd := mustCommand(t, &FetchPosts{}, &auth.Identity{ID: 5})
		_, err := svc.List(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, uint(5), gotViewer)
	})
}

func TestSaveAndUnsave(t *testing.T) {
	t.Parallel()

	caller := &auth.Identity{ID: 4, Username: "alice"}

	t.Run("save forwards both ids", func(t *testing.T) {
		t.Parallel()
		var gotUser, gotPost uint
		repo := &stubPostRepo{
			existsFn: func(context.Context, uint) (bool, error) { return true, nil },
			saveFn: func(_ context.Context, userID, postID uint) error {
				gotUser, gotPost = userID, postID
				return nil
			},
		}
		svc := NewPostService(repo)

		cmd := mustCommand(t, &SavePost{PostID: 11}, caller)
		require.NoError(t, svc.Save(context.Background(), cmd))
		assert.Equal(t, uint(4), gotUser)
		assert.Equal(t, uint(11), gotPost)
	})

	t.Run("saving a missing post is not found", func(t *testing.T) {
		t.Parallel()
		repo := &stubPostRepo{
			existsFn: func(context.Context, uint) (bool, error) { return false, nil },
		}
		svc := NewPostService(repo)

		cmd := mustCommand(t, &SavePost{PostID: 11}, caller)
		err := svc.Save(context.Background(), cmd)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unsave of a missing post is not found", func(t *testing.T) {
		t.Parallel()
		repo := &stubPostRepo{
			existsFn: func(context.Context, uint) (bool, error) { return false, nil },
		}
		svc := NewPostService(repo)

		cmd := mustCommand(t, &SavePost{PostID: 11}, caller)
		err := svc.Unsave(context.Background(), cmd)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unsave forwards both ids", func(t *testing.T) {
		t.Parallel()
		var gotUser, gotPost uint
		repo := &stubPostRepo{
			existsFn: func(context.Context, uint) (bool, error) { return true, nil },
			unsaveFn: func(_ context.Context, userID, postID uint) error {
				gotUser, gotPost = userID, postID
				return nil
			},
		}
		svc := NewPostService(repo)

		cmd := mustCommand(t, &SavePost{PostID: 12}, caller)
		require.NoError(t, svc.Unsave(context.Background(), cmd))
		assert.Equal(t, uint(4), gotUser)
		assert.Equal(t, uint(12), gotPost)
	})
}
