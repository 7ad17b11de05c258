package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// Postgres error codes được map sang domain errors
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err came from a unique constraint,
// optionally restricted to the given constraint names
func IsUniqueViolation(err error, constraints ...string) bool {
	return hasCode(err, UniqueViolation, constraints)
}

// IsForeignKeyViolation reports whether err came from a foreign key constraint
func IsForeignKeyViolation(err error, constraints ...string) bool {
	return hasCode(err, ForeignKeyViolation, constraints)
}

func hasCode(err error, code string, constraints []string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}

// Close đóng tất cả connections trong pool, safe to call multiple times
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil

	return nil
}

// PoolStats là snapshot của connection pool, được trả về bởi /health
type PoolStats struct {
	AcquiredConns  int32         `json:"acquired_conns"`
	IdleConns      int32         `json:"idle_conns"`
	TotalConns     int32         `json:"total_conns"`
	MaxConns       int32         `json:"max_conns"`
	AvgAcquireTime time.Duration `json:"avg_acquire_time"`
}

func (db *PostgresDB) Stats() *PoolStats {
	if db.Pool == nil {
		return nil
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:  raw.AcquiredConns(),
		IdleConns:      raw.IdleConns(),
		TotalConns:     raw.TotalConns(),
		MaxConns:       raw.MaxConns(),
		AvgAcquireTime: calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}
}

func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}
