package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFeedQuery_PublicWithComments(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := FeedQuery{PublicOnly: true, WithComments: true, Now: now}

	sql, args := q.Build(10, 20)

	assert.Contains(t, sql, "COUNT(cm.id) AS comment_count")
	assert.Contains(t, sql, "LEFT JOIN comments cm")
	assert.Contains(t, sql, "p.is_published AND (p.category_id IS NULL OR c.is_published) AND p.pub_date <= $1")
	assert.Contains(t, sql, "GROUP BY")
	assert.Contains(t, sql, "ORDER BY p.pub_date DESC, p.created_at DESC, p.id DESC")
	assert.Contains(t, sql, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{now, 10, 20}, args)
}

func TestFeedQuery_SwitchesAreIndependent(t *testing.T) {
	plain, args := FeedQuery{}.Build(0, 0)
	assert.NotContains(t, plain, "WHERE")
	assert.NotContains(t, plain, "comments")
	assert.NotContains(t, plain, "LIMIT")
	assert.Contains(t, plain, "0 AS comment_count")
	assert.Empty(t, args)

	publicOnly, _ := FeedQuery{PublicOnly: true, Now: time.Now()}.Build(0, 0)
	assert.Contains(t, publicOnly, "p.is_published")
	assert.NotContains(t, publicOnly, "COUNT(cm.id)")

	commentsOnly, _ := FeedQuery{WithComments: true}.Build(0, 0)
	assert.Contains(t, commentsOnly, "COUNT(cm.id)")
	assert.NotContains(t, commentsOnly, "WHERE")
}

func TestFeedQuery_AuthorFilterAndCount(t *testing.T) {
	author := uuid.New()
	q := FeedQuery{AuthorID: &author, WithComments: true}

	sql, args := q.Build(5, 0)
	assert.Contains(t, sql, "p.author_id = $1")
	assert.Equal(t, []any{author, 5, 0}, args)

	count, countArgs := q.BuildCount()
	assert.Equal(t, "SELECT COUNT(*) FROM posts p LEFT JOIN categories c ON c.id = p.category_id WHERE p.author_id = $1", count)
	assert.Equal(t, []any{author}, countArgs)
}

func TestFeedQuery_CategoryAndPublic(t *testing.T) {
	cat := uuid.New()
	now := time.Now()

	sql, args := FeedQuery{CategoryID: &cat, PublicOnly: true, Now: now}.BuildCount()

	assert.Contains(t, sql, "p.category_id = $1 AND p.is_published")
	assert.Contains(t, sql, "p.pub_date <= $2")
	assert.Equal(t, []any{cat, now}, args)
}
