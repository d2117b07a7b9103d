package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/dberrors"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, first_name, last_name, role_type, is_active, is_verified, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.RoleType,
		&user.IsActive,
		&user.IsVerified,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. The insert runs inside the caller's transaction
// when tx is non-nil so that user+profile creation stays atomic.
func (r *UserRepository) Create(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (email, password, first_name, last_name, role_type, is_active, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	row := r.queryRow(ctx, tx, query,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		user.RoleType,
		user.IsActive,
		user.IsVerified,
	)

	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return user.ID, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdateProfile updates a user's basic profile information
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, updated_at = NOW() WHERE id = $3`,
		firstName, lastName, userID)
	if err != nil {
		return fmt.Errorf("error updating user profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// SetActive activates or deactivates a user account
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
	if err != nil {
		return fmt.Errorf("error updating user active flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetVerified marks a user's email address as verified
func (r *UserRepository) SetVerified(ctx context.Context, userID int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error updating user verified flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListIDsByRole returns the user IDs holding a role; used for broadcasts
func (r *UserRepository) ListIDsByRole(ctx context.Context, role *models.RoleType) ([]int64, error) {
	query := `SELECT id FROM users WHERE is_active = TRUE`
	args := []interface{}{}
	if role != nil {
		query += ` AND role_type = $1`
		args = append(args, *role)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing user IDs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning user ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// queryRow runs on the transaction when provided, otherwise on the pool
func (r *UserRepository) queryRow(ctx context.Context, tx pgx.Tx, query string, args ...interface{}) pgx.Row {
	if tx != nil {
		return tx.QueryRow(ctx, query, args...)
	}
	return r.db.QueryRow(ctx, query, args...)
}
