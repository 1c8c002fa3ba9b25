// Package threads rebuilds a post's nested reply tree from the flat
// adjacency-list rows produced by a single recursive query.
package threads

import (
	"sort"
	"time"
)

// Row is one flat comment row. ParentID is nil for root comments. Replies is
// the transitive descendant count precomputed by the store, so the service
// never re-queries per level.
type Row struct {
	ID         uint
	ParentID   *uint
	Body       string
	AuthorID   uint
	AuthorName string
	CreatedAt  time.Time
	Replies    int64
}

// Node is one comment in the reconstructed tree. Replies holds the direct
// children, recursively; it is always non-nil, empty for leaves.
type Node struct {
	ID           uint      `json:"id"`
	Body         string    `json:"body"`
	AuthorID     uint      `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	CreatedAt    time.Time `json:"created_at"`
	TotalReplies int64     `json:"total_replies"`
	Replies      []*Node   `json:"replies"`
}

// SortMode selects the sibling comparator applied at every tree level.
type SortMode string

// Supported sort modes.
const (
	SortLatest  SortMode = "latest"
	SortOldest  SortMode = "oldest"
	SortHighest SortMode = "highest"
	SortLowest  SortMode = "lowest"
)

// ParseSortMode maps a query value onto a SortMode. The empty string selects
// the default (latest); anything else unknown is rejected.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case "":
		return SortLatest, true
	case SortLatest, SortOldest, SortHighest, SortLowest:
		return SortMode(s), true
	}
	return "", false
}

// Build reconstructs the reply forest. Children are grouped by parent id in
// one pass, then each level is emitted and sorted independently. Ties break
// on id ascending so output is deterministic.
func Build(rows []Row, mode SortMode) []*Node {
	children := make(map[uint][]Row, len(rows))
	for _, r := range rows {
		var parent uint // 0 = root level; stored ids are always positive
		if r.ParentID != nil {
			parent = *r.ParentID
		}
		children[parent] = append(children[parent], r)
	}
	return build(children, 0, mode)
}

func build(children map[uint][]Row, parent uint, mode SortMode) []*Node {
	level := make([]*Node, 0, len(children[parent]))
	for _, r := range children[parent] {
		level = append(level, &Node{
			ID:           r.ID,
			Body:         r.Body,
			AuthorID:     r.AuthorID,
			AuthorName:   r.AuthorName,
			CreatedAt:    r.CreatedAt,
			TotalReplies: r.Replies,
			Replies:      build(children, r.ID, mode),
		})
	}

	sort.Slice(level, func(i, j int) bool {
		return less(level[i], level[j], mode)
	})
	return level
}

func less(a, b *Node, mode SortMode) bool {
	switch mode {
	case SortOldest:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortHighest:
		if a.TotalReplies != b.TotalReplies {
			return a.TotalReplies > b.TotalReplies
		}
	case SortLowest:
		if a.TotalReplies != b.TotalReplies {
			return a.TotalReplies < b.TotalReplies
		}
	default: // latest
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}
