package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum-backend/internal/domains/location"
)

const selectLocation = `SELECT id, name, is_published, created_at FROM locations`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) location.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, l *location.Location) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO locations (id, name, is_published, created_at)
		VALUES ($1, $2, $3, $4)`,
		l.ID, l.Name, l.IsPublished, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	var l location.Location
	err := r.pool.QueryRow(ctx, selectLocation+` WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, location.ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *postgresRepository) List(ctx context.Context, publishedOnly bool) ([]location.Location, error) {
	query := selectLocation
	if publishedOnly {
		query += ` WHERE is_published`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]location.Location, 0)
	for rows.Next() {
		var l location.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, l *location.Location) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE locations SET name = $2, is_published = $3 WHERE id = $1`,
		l.ID, l.Name, l.IsPublished,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}
	return nil
}
