package repository

import (
	"context"
	"fmt"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations. viewerID is
// the authenticated caller's account id, 0 for anonymous reads; it controls
// whether responses carry the per-viewer saved flag.
type PostRepository interface {
	CreateWithTopics(ctx context.Context, post *models.Post, topicNames []string) error
	List(ctx context.Context, viewerID uint, limit, offset int) ([]*models.PostResponse, error)
	GetByID(ctx context.Context, id, viewerID uint) (*models.PostResponse, error)
	ListByAuthor(ctx context.Context, authorID, viewerID uint) ([]*models.PostResponse, error)
	ListSavedBy(ctx context.Context, userID, viewerID uint) ([]*models.PostResponse, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Save(ctx context.Context, userID, postID uint) error
	Unsave(ctx context.Context, userID, postID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// CreateWithTopics runs the topic upsert, the post insert, and the link
// inserts inside one transaction. The upsert keeps existing rows on a name
// conflict, so an already-assigned color is stable. A failure at any step
// leaves no orphaned post.
func (r *postRepository) CreateWithTopics(ctx context.Context, post *models.Post, topicNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		topics := make([]models.Topic, len(topicNames))
		for i, name := range topicNames {
			topics[i] = models.Topic{Name: name, Color: models.RandomTopicColor()}
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&topics).Error; err != nil {
			return err
		}

		// Conflicting rows kept their ids; re-read the full set by name.
		var topicIDs []uint
		if err := tx.Model(&models.Topic{}).
			Where("name IN ?", topicNames).
			Pluck("id", &topicIDs).Error; err != nil {
			return err
		}
		if len(topicIDs) != len(topicNames) {
			return fmt.Errorf("expected %d topics after upsert, found %d", len(topicNames), len(topicIDs))
		}

		if err := tx.Create(post).Error; err != nil {
			return err
		}

		links := make([]models.PostTopic, len(topicIDs))
		for i, topicID := range topicIDs {
			links[i] = models.PostTopic{PostID: post.ID, TopicID: topicID}
		}
		return tx.Create(&links).Error
	})

	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

// postSelect builds the shared post listing query. The viewer variant adds a
// saved flag computed against the caller's own saves.
func postSelect(withViewer bool, where string) string {
	savedCol, savedJoin, savedGroup := "", "", ""
	if withViewer {
		savedCol = ",\n       (sv.post_id IS NOT NULL) AS saved"
		savedJoin = "\nLEFT JOIN saved_posts sv ON sv.post_id = p.id AND sv.user_id = ?"
		savedGroup = ", sv.post_id"
	}

	q := `SELECT p.id, p.title, p.body, u.id AS author_id, u.username AS author_name, p.created_at,
       ARRAY_TO_STRING(ARRAY_AGG(DISTINCT t.name || ':' || t.color), ',') AS topics,
       COUNT(DISTINCT c.*) AS comments,
       COUNT(DISTINCT s.*) AS saves` + savedCol + `
FROM posts p
INNER JOIN posts_topics_relationship r ON p.id = r.post_id
INNER JOIN topics t ON t.id = r.topic_id
INNER JOIN users u ON u.id = p.user_id
LEFT JOIN post_comments c ON p.id = c.post_id
LEFT JOIN saved_posts s ON s.post_id = p.id` + savedJoin
	if where != "" {
		q += "\nWHERE " + where
	}
	q += "\nGROUP BY p.id, u.id" + savedGroup + "\nORDER BY p.created_at DESC"
	return q
}

func (r *postRepository) queryPosts(ctx context.Context, viewerID uint, where, suffix string, args ...interface{}) ([]*models.PostResponse, error) {
	withViewer := viewerID != 0

	sqlArgs := make([]interface{}, 0, len(args)+1)
	if withViewer {
		sqlArgs = append(sqlArgs, viewerID)
	}
	sqlArgs = append(sqlArgs, args...)

	rows, err := r.db.WithContext(ctx).Raw(postSelect(withViewer, where)+suffix, sqlArgs...).Rows()
	if err != nil {
		return nil, err
	}
	return scanPostRows(rows, withViewer)
}

func (r *postRepository) List(ctx context.Context, viewerID uint, limit, offset int) ([]*models.PostResponse, error) {
	if viewerID == 0 {
		// The anonymous front page is the hottest read; serve it cache-aside.
		key := fmt.Sprintf("%s:%d:%d", cache.PostsListPrefix, limit, offset)
		var posts []*models.PostResponse
		err := cache.Aside(ctx, key, &posts, cache.PostsListTTL, func() error {
			var fetchErr error
			posts, fetchErr = r.queryPosts(ctx, 0, "", "\nLIMIT ? OFFSET ?", limit, offset)
			return fetchErr
		})
		return posts, err
	}
	return r.queryPosts(ctx, viewerID, "", "\nLIMIT ? OFFSET ?", limit, offset)
}

func (r *postRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.PostResponse, error) {
	posts, err := r.queryPosts(ctx, viewerID, "p.id = ?", "", id)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return posts[0], nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID, viewerID uint) ([]*models.PostResponse, error) {
	return r.queryPosts(ctx, viewerID, "u.id = ?", "", authorID)
}

func (r *postRepository) ListSavedBy(ctx context.Context, userID, viewerID uint) ([]*models.PostResponse, error) {
	where := "EXISTS (SELECT 1 FROM saved_posts x WHERE x.post_id = p.id AND x.user_id = ?)"
	return r.queryPosts(ctx, viewerID, where, "", userID)
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return PostExists(ctx, r.db, id)
}

// Save bookmarks a post for a user. Saving an already-saved post is a no-op,
// never an error.
func (r *postRepository) Save(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SavedPost{UserID: userID, PostID: postID}).Error
}

// Unsave removes a bookmark. Removing a bookmark that never existed is a
// no-op as well.
func (r *postRepository) Unsave(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{}).Error
}

// PostExists reports whether a post row exists. Package-level so
// validation-stage checks can run against a bare store handle.
func PostExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var exists bool
	err := db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM posts WHERE id = ?)", id).
		Scan(&exists).Error
	return exists, err
}
