package repository

import (
	"context"
	"database/sql"

	"quill/internal/models"
	"quill/internal/threads"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListThread(ctx context.Context, postID uint) ([]threads.Row, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// threadQuery fetches every comment of a post in one round-trip, with each
// row's transitive descendant count computed by a recursive closure over the
// post's comment set. The store does the transitive closure once; tree
// nesting happens in memory afterwards.
const threadQuery = `WITH RECURSIVE closure AS (
    SELECT c.comment_id AS ancestor, c.id AS descendant
    FROM post_comments c
    WHERE c.post_id = ? AND c.comment_id IS NOT NULL
  UNION ALL
    SELECT c.comment_id, cl.descendant
    FROM post_comments c
    INNER JOIN closure cl ON cl.ancestor = c.id
    WHERE c.comment_id IS NOT NULL
)
SELECT c.id, c.comment_id, c.body, u.id AS author_id, u.username AS author_name, c.created_at,
       COALESCE(cnt.replies, 0) AS replies
FROM post_comments c
INNER JOIN users u ON u.id = c.user_id
LEFT JOIN (
    SELECT ancestor, COUNT(*) AS replies FROM closure GROUP BY ancestor
) cnt ON cnt.ancestor = c.id
WHERE c.post_id = ?`

func (r *commentRepository) ListThread(ctx context.Context, postID uint) ([]threads.Row, error) {
	rows, err := r.db.WithContext(ctx).Raw(threadQuery, postID, postID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []threads.Row{}
	for rows.Next() {
		var (
			row    threads.Row
			parent sql.NullInt64
		)
		if err := rows.Scan(&row.ID, &parent, &row.Body, &row.AuthorID,
			&row.AuthorName, &row.CreatedAt, &row.Replies); err != nil {
			return nil, conversionError("comment")
		}
		if parent.Valid {
			p := uint(parent.Int64)
			row.ParentID = &p
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CommentInPost reports whether the comment exists and belongs to the given
// post. Package-level so validation-stage checks can run against a bare
// store handle.
func CommentInPost(ctx context.Context, db *gorm.DB, commentID, postID uint) (bool, error) {
	var ok bool
	err := db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM post_comments WHERE id = ? AND post_id = ?)", commentID, postID).
		Scan(&ok).Error
	return ok, err
}
