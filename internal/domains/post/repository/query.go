package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogicum-backend/internal/shared/utils"
)

// FeedQuery dựng câu SELECT posts dùng chung cho feed và detail.
// PublicOnly và WithComments độc lập với nhau; mọi feed đều bật WithComments.
type FeedQuery struct {
	PostID     *uuid.UUID
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID

	PublicOnly   bool
	WithComments bool
	Now          time.Time
}

const postColumns = `
	p.id, p.title, p.text, p.pub_date, p.author_id, p.category_id, p.location_id,
	p.image_key, p.is_published, p.created_at,
	u.username,
	c.title, c.slug, c.is_published,
	l.name, l.is_published`

const postJoins = `
FROM posts p
JOIN users u ON u.id = p.author_id
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN locations l ON l.id = p.location_id`

// Build trả về query + args, limit <= 0 nghĩa là không giới hạn
func (q FeedQuery) Build(limit, offset int) (string, []any) {
	args := &utils.ArgList{}

	var sb strings.Builder
	sb.WriteString("SELECT")
	sb.WriteString(postColumns)
	if q.WithComments {
		sb.WriteString(",\n\tCOUNT(cm.id) AS comment_count")
	} else {
		sb.WriteString(",\n\t0 AS comment_count")
	}
	sb.WriteString(postJoins)
	if q.WithComments {
		sb.WriteString("\nLEFT JOIN comments cm ON cm.post_id = p.id")
	}

	if where := q.where(args); where != "" {
		sb.WriteString("\nWHERE ")
		sb.WriteString(where)
	}

	if q.WithComments {
		sb.WriteString("\nGROUP BY p.id, u.username, c.id, l.id")
	}
	// p.id làm tiebreaker để OFFSET paging ổn định
	sb.WriteString("\nORDER BY p.pub_date DESC, p.created_at DESC, p.id DESC")

	if limit > 0 {
		sb.WriteString(fmt.Sprintf("\nLIMIT %s OFFSET %s", args.Add(limit), args.Add(offset)))
	}

	return sb.String(), args.Values()
}

// BuildCount đếm số posts khớp filter, không cần join users/comments
func (q FeedQuery) BuildCount() (string, []any) {
	args := &utils.ArgList{}

	query := `SELECT COUNT(*) FROM posts p LEFT JOIN categories c ON c.id = p.category_id`
	if where := q.where(args); where != "" {
		query += " WHERE " + where
	}
	return query, args.Values()
}

func (q FeedQuery) where(args *utils.ArgList) string {
	var clauses []string

	if q.PostID != nil {
		clauses = append(clauses, "p.id = "+args.Add(*q.PostID))
	}
	if q.AuthorID != nil {
		clauses = append(clauses, "p.author_id = "+args.Add(*q.AuthorID))
	}
	if q.CategoryID != nil {
		clauses = append(clauses, "p.category_id = "+args.Add(*q.CategoryID))
	}
	if q.PublicOnly {
		clauses = append(clauses,
			"p.is_published",
			"(p.category_id IS NULL OR c.is_published)",
			"p.pub_date <= "+args.Add(q.Now),
		)
	}

	return utils.JoinWithAnd(clauses)
}
