package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum-backend/internal/domains/comment"
)

const selectComment = `
	SELECT cm.id, cm.text, cm.post_id, cm.author_id, u.username, cm.created_at
	FROM comments cm
	JOIN users u ON u.id = cm.author_id`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, text, post_id, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Text, c.PostID, c.AuthorID, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByIDAndPost(ctx context.Context, id, postID uuid.UUID) (*comment.Comment, error) {
	var c comment.Comment
	err := r.pool.QueryRow(ctx, selectComment+` WHERE cm.id = $1 AND cm.post_id = $2`, id, postID).
		Scan(&c.ID, &c.Text, &c.PostID, &c.AuthorID, &c.AuthorUsername, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, comment.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]comment.Comment, error) {
	rows, err := r.pool.Query(ctx, selectComment+` WHERE cm.post_id = $1 ORDER BY cm.created_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]comment.Comment, 0)
	for rows.Next() {
		var c comment.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.PostID, &c.AuthorID, &c.AuthorUsername, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, c *comment.Comment) error {
	tag, err := r.pool.Exec(ctx, `UPDATE comments SET text = $2 WHERE id = $1`, c.ID, c.Text)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}
	return nil
}
