package repository

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/infrastructure/database"
)

// so sánh trực tiếp cột uuid để dùng được primary key index
const existingIDsQuery = `SELECT id FROM posts WHERE id = ANY($1::uuid[])`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Post) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (id, title, text, pub_date, author_id, category_id, location_id,
			image_key, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Title, p.Text, p.PubDate, p.AuthorID, p.CategoryID, p.LocationID,
		p.ImageKey, p.IsPublished, p.CreatedAt,
	)
	if err != nil {
		return writeError("create post", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query, args := FeedQuery{PostID: &id, WithComments: true}.Build(0, 0)

	p, err := scanPost(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Post) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $2, text = $3, pub_date = $4, category_id = $5, location_id = $6,
			image_key = $7, is_published = $8
		WHERE id = $1`,
		p.ID, p.Title, p.Text, p.PubDate, p.CategoryID, p.LocationID, p.ImageKey, p.IsPublished,
	)
	if err != nil {
		return writeError("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// Delete: comments bị xóa theo ON DELETE CASCADE
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE posts SET is_published = $2 WHERE id = $1`, id, published)
	if err != nil {
		return fmt.Errorf("set post published: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) ListFeed(ctx context.Context, q FeedQuery, limit, offset int) ([]model.Post, error) {
	query, args := q.Build(limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *postgresRepository) CountFeed(ctx context.Context, q FeedQuery) (int, error) {
	query, args := q.BuildCount()

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	rows, err := r.pool.Query(ctx, existingIDsQuery, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("check post ids: %w", err)
	}
	defer rows.Close()

	existing := make([]uuid.UUID, 0, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan post id: %w", err)
		}
		existing = append(existing, id)
	}
	return existing, rows.Err()
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		p        model.Post
		catTitle *string
		catSlug  *string
		catPub   *bool
		locName  *string
		locPub   *bool
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.Text, &p.PubDate, &p.AuthorID, &p.CategoryID, &p.LocationID,
		&p.ImageKey, &p.IsPublished, &p.CreatedAt,
		&p.AuthorUsername,
		&catTitle, &catSlug, &catPub,
		&locName, &locPub,
		&p.CommentCount,
	)
	if err != nil {
		return nil, err
	}

	if p.CategoryID != nil && catSlug != nil {
		p.Category = &model.CategoryRef{
			ID:          *p.CategoryID,
			Title:       deref(catTitle),
			Slug:        *catSlug,
			IsPublished: catPub != nil && *catPub,
		}
	}
	if p.LocationID != nil && locName != nil {
		p.Location = &model.LocationRef{
			ID:          *p.LocationID,
			Name:        *locName,
			IsPublished: locPub != nil && *locPub,
		}
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// writeError: category/location bị admin xóa giữa lúc validate và lúc ghi
func writeError(op string, err error) error {
	switch {
	case database.IsForeignKeyViolation(err, "posts_category_id_fkey"):
		return validation.Errors{"category_id": model.ErrCategoryMissing}
	case database.IsForeignKeyViolation(err, "posts_location_id_fkey"):
		return validation.Errors{"location_id": model.ErrLocationMissing}
	}
	return fmt.Errorf("%s: %w", op, err)
}
