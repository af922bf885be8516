package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmoren/saasbase/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
// Timestamps are stored as INTEGER milliseconds since epoch.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (clerk_id, email, name, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ClerkID, user.Email, user.Name, user.ImageURL, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByClerkID(ctx context.Context, clerkID string) (*domain.User, error) {
	user := &domain.User{}
	var createdAt, updatedAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, clerk_id, email, name, image_url, created_at, updated_at
		 FROM users WHERE clerk_id = ?`, clerkID,
	).Scan(&user.ID, &user.ClerkID, &user.Email, &user.Name, &user.ImageURL, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by clerk id: %w", err)
	}

	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	user.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = ?, name = ?, image_url = ?, updated_at = ?
		 WHERE clerk_id = ?`,
		user.Email, user.Name, user.ImageURL, now.UnixMilli(), user.ClerkID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) DeleteByClerkID(ctx context.Context, clerkID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE clerk_id = ?`, clerkID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return affected > 0, nil
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
