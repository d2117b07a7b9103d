package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a student profile. Runs inside the caller's transaction when
// tx is non-nil.
func (r *StudentRepository) Create(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, school, grade_level, bio, interests)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	var row pgx.Row
	if tx != nil {
		row = tx.QueryRow(ctx, query, student.UserID, student.School, student.GradeLevel, student.Bio, student.Interests)
	} else {
		row = r.db.QueryRow(ctx, query, student.UserID, student.School, student.GradeLevel, student.Bio, student.Interests)
	}

	if err := row.Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return nil
}

func (r *StudentRepository) scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var careersJSON []byte
	err := row.Scan(
		&student.ID,
		&student.UserID,
		&student.School,
		&student.GradeLevel,
		&student.Bio,
		&student.Interests,
		&careersJSON,
		&student.QuizTakenAt,
		&student.SessionsAttended,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(careersJSON) > 0 {
		if err := json.Unmarshal(careersJSON, &student.RecommendedCareers); err != nil {
			return nil, fmt.Errorf("error decoding recommended careers: %w", err)
		}
	}

	return &student, nil
}

const studentColumns = `id, user_id, school, grade_level, bio, interests, recommended_careers, quiz_taken_at, sessions_attended, created_at, updated_at`

// GetByUserID retrieves a student profile by owning user ID
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE user_id = $1`

	student, err := r.scanStudent(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return student, nil
}

// GetByID retrieves a student profile by its own ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	student, err := r.scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return student, nil
}

// UpdateProfile updates the mutable student fields
func (r *StudentRepository) UpdateProfile(ctx context.Context, student *models.Student) error {
	result, err := r.db.Exec(ctx, `
		UPDATE students
		SET school = $1, grade_level = $2, bio = $3, interests = $4, updated_at = NOW()
		WHERE id = $5`,
		student.School, student.GradeLevel, student.Bio, student.Interests, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SaveQuizResult stores the latest quiz recommendation list on the student
func (r *StudentRepository) SaveQuizResult(ctx context.Context, studentID int64, careers []models.CareerScore, takenAt time.Time) error {
	careersJSON, err := json.Marshal(careers)
	if err != nil {
		return fmt.Errorf("error encoding recommended careers: %w", err)
	}

	result, err := r.db.Exec(ctx, `
		UPDATE students
		SET recommended_careers = $1, quiz_taken_at = $2, updated_at = NOW()
		WHERE id = $3`,
		careersJSON, takenAt, studentID)
	if err != nil {
		return fmt.Errorf("error saving quiz result: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// IncrementSessionsAttended bumps the student's completed session counter
func (r *StudentRepository) IncrementSessionsAttended(ctx context.Context, studentID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE students SET sessions_attended = sessions_attended + 1, updated_at = NOW()
		WHERE id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("error incrementing sessions attended: %w", err)
	}
	return nil
}
