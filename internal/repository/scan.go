package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"quill/internal/models"
)

// conversionError is the single fail-fast error for a row whose columns
// could not all be extracted. Malformed or schema-drifted rows are never
// silently coerced into partial output.
func conversionError(entity string) error {
	return fmt.Errorf("error converting %s row to response type", entity)
}

// ParseTopicPairs decodes the aggregated "name:color" pairs a post query
// emits for its topics. Any malformed pair fails the whole value.
func ParseTopicPairs(joined string) ([]models.TopicRef, error) {
	if joined == "" {
		return []models.TopicRef{}, nil
	}

	parts := strings.Split(joined, ",")
	refs := make([]models.TopicRef, 0, len(parts))
	for _, part := range parts {
		name, color, ok := strings.Cut(part, ":")
		if !ok || name == "" || color == "" {
			return nil, conversionError("topic")
		}
		refs = append(refs, models.TopicRef{Name: name, Color: color})
	}
	return refs, nil
}

// scanPostRows maps a raw post result set into response records. withViewer
// selects the query variant that carries the per-viewer saved flag.
func scanPostRows(rows *sql.Rows, withViewer bool) ([]*models.PostResponse, error) {
	defer rows.Close()

	posts := []*models.PostResponse{}
	for rows.Next() {
		var (
			p      models.PostResponse
			topics string
			saved  bool
		)

		var err error
		if withViewer {
			err = rows.Scan(&p.ID, &p.Title, &p.Body, &p.AuthorID, &p.AuthorName,
				&p.CreatedAt, &topics, &p.Comments, &p.Saves, &saved)
		} else {
			err = rows.Scan(&p.ID, &p.Title, &p.Body, &p.AuthorID, &p.AuthorName,
				&p.CreatedAt, &topics, &p.Comments, &p.Saves)
		}
		if err != nil {
			return nil, conversionError("post")
		}

		refs, err := ParseTopicPairs(topics)
		if err != nil {
			return nil, err
		}
		p.Topics = refs

		if withViewer {
			p.Saved = &saved
		}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}
