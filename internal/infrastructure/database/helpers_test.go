package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "users_username_key"}
	wrapped := fmt.Errorf("insert user: %w", dup)

	assert.True(t, IsUniqueViolation(wrapped))
	assert.True(t, IsUniqueViolation(wrapped, "users_email_key", "users_username_key"))
	assert.False(t, IsUniqueViolation(wrapped, "users_email_key"))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsForeignKeyViolation(wrapped))
}

func TestCalculateAvgDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), calculateAvgDuration(time.Second, 0))
	assert.Equal(t, 250*time.Millisecond, calculateAvgDuration(time.Second, 4))
}

func TestBuildConnectionString(t *testing.T) {
	db := NewPostgresDB(&DBConfig{Host: "db", Port: 5432, Username: "u", Password: "p", DBName: "blog"})
	assert.Equal(t, "postgresql://u:p@db:5432/blog?sslmode=disable", db.buildConnectionString())
}

func TestMigrationNames_Sorted(t *testing.T) {
	names, err := migrationNames()
	assert.NoError(t, err)
	assert.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])
}
