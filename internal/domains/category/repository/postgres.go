package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum-backend/internal/domains/category"
	"blogicum-backend/internal/infrastructure/database"
)

const selectCategory = `SELECT id, title, description, slug, is_published, created_at FROM categories`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, title, description, slug, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Title, c.Description, c.Slug, c.IsPublished, c.CreatedAt,
	)
	if database.IsUniqueViolation(err) {
		return category.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectCategory+` WHERE id = $1`, id))
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return r.scanOne(r.pool.QueryRow(ctx, selectCategory+` WHERE slug = $1`, slug))
}

func (r *postgresRepository) List(ctx context.Context, publishedOnly bool) ([]category.Category, error) {
	query := selectCategory
	if publishedOnly {
		query += ` WHERE is_published`
	}
	query += ` ORDER BY title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.IsPublished, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, c *category.Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET title = $2, description = $3, slug = $4, is_published = $5
		WHERE id = $1`,
		c.ID, c.Title, c.Description, c.Slug, c.IsPublished,
	)
	if database.IsUniqueViolation(err) {
		return category.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// Delete: posts của category giữ lại với category_id = NULL (ON DELETE SET NULL)
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) scanOne(row pgx.Row) (*category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Slug, &c.IsPublished, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &c, nil
}
