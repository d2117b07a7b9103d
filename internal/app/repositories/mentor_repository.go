package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/helpers"
)

// MentorRepository handles database operations for mentor profiles
type MentorRepository struct {
	db *pgxpool.Pool
}

// NewMentorRepository creates a new MentorRepository
func NewMentorRepository(db *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{db: db}
}

const mentorColumns = `id, user_id, headline, bio, company, years_experience, hourly_rate, expertise,
	verification_status, average_rating, rating_count, total_sessions, total_hours, created_at, updated_at`

func scanMentor(row pgx.Row) (*models.Mentor, error) {
	var m models.Mentor
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Headline,
		&m.Bio,
		&m.Company,
		&m.YearsExperience,
		&m.HourlyRate,
		&m.Expertise,
		&m.VerificationStatus,
		&m.AverageRating,
		&m.RatingCount,
		&m.TotalSessions,
		&m.TotalHours,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a mentor profile in PENDING verification state. Runs inside
// the caller's transaction when tx is non-nil.
func (r *MentorRepository) Create(ctx context.Context, tx pgx.Tx, mentor *models.Mentor) error {
	query := `
		INSERT INTO mentors (user_id, headline, bio, company, years_experience, hourly_rate, expertise, verification_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if mentor.VerificationStatus == "" {
		mentor.VerificationStatus = models.VerificationPending
	}

	var row pgx.Row
	args := []interface{}{
		mentor.UserID, mentor.Headline, mentor.Bio, mentor.Company,
		mentor.YearsExperience, mentor.HourlyRate, mentor.Expertise, mentor.VerificationStatus,
	}
	if tx != nil {
		row = tx.QueryRow(ctx, query, args...)
	} else {
		row = r.db.QueryRow(ctx, query, args...)
	}

	if err := row.Scan(&mentor.ID, &mentor.CreatedAt, &mentor.UpdatedAt); err != nil {
		return fmt.Errorf("error creating mentor profile: %w", err)
	}

	return nil
}

// GetByID retrieves a mentor profile by its own ID
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*models.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE id = $1`

	mentor, err := scanMentor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorNotFound
		}
		return nil, fmt.Errorf("error retrieving mentor profile: %w", err)
	}

	return mentor, nil
}

// GetByUserID retrieves a mentor profile by owning user ID
func (r *MentorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE user_id = $1`

	mentor, err := scanMentor(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorNotFound
		}
		return nil, fmt.Errorf("error retrieving mentor profile: %w", err)
	}

	return mentor, nil
}

// ListApproved retrieves approved mentors with directory filters and pagination
func (r *MentorRepository) ListApproved(ctx context.Context, filter dto.MentorFilter) ([]*models.Mentor, int64, error) {
	queryBuilder := squirrel.Select(
		"m.id", "m.user_id", "m.headline", "m.bio", "m.company", "m.years_experience",
		"m.hourly_rate", "m.expertise", "m.verification_status", "m.average_rating",
		"m.rating_count", "m.total_sessions", "m.total_hours", "m.created_at", "m.updated_at",
		"u.first_name", "u.last_name", "u.email",
	).
		From("mentors m").
		Join("users u ON m.user_id = u.id").
		Where("m.verification_status = ?", models.VerificationApproved).
		Where("u.is_active = TRUE").
		OrderBy("m.average_rating DESC", "m.rating_count DESC", "m.id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Expertise != nil {
		queryBuilder = queryBuilder.Where("? = ANY(m.expertise)", *filter.Expertise)
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		queryBuilder = queryBuilder.Where(
			"(u.first_name ILIKE ? OR u.last_name ILIKE ? OR m.headline ILIKE ?)",
			pattern, pattern, pattern)
	}
	if filter.MinRating != nil {
		queryBuilder = queryBuilder.Where("m.average_rating >= ?", *filter.MinRating)
	}
	if filter.MaxRate != nil {
		queryBuilder = queryBuilder.Where("m.hourly_rate <= ?", *filter.MaxRate)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	queryBuilder = queryBuilder.
		Column("COUNT(*) OVER()").
		Limit(uint64(limit)).
		Offset(offset)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var mentors []*models.Mentor
	var total int64

	for rows.Next() {
		var m models.Mentor
		var user models.User
		err := rows.Scan(
			&m.ID, &m.UserID, &m.Headline, &m.Bio, &m.Company, &m.YearsExperience,
			&m.HourlyRate, &m.Expertise, &m.VerificationStatus, &m.AverageRating,
			&m.RatingCount, &m.TotalSessions, &m.TotalHours, &m.CreatedAt, &m.UpdatedAt,
			&user.FirstName, &user.LastName, &user.Email,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning mentor row: %w", err)
		}
		user.ID = m.UserID
		m.User = &user
		mentors = append(mentors, &m)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating mentor rows: %w", err)
	}

	return mentors, total, nil
}

// ListByVerificationStatus lists mentors in a moderation state (admin view)
func (r *MentorRepository) ListByVerificationStatus(ctx context.Context, status models.VerificationStatus) ([]*models.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE verification_status = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("error listing mentors: %w", err)
	}
	defer rows.Close()

	var mentors []*models.Mentor
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning mentor row: %w", err)
		}
		mentors = append(mentors, m)
	}

	return mentors, rows.Err()
}

// UpdateProfile updates the mentor's professional info
func (r *MentorRepository) UpdateProfile(ctx context.Context, mentor *models.Mentor) error {
	result, err := r.db.Exec(ctx, `
		UPDATE mentors
		SET headline = $1, bio = $2, company = $3, years_experience = $4,
		    hourly_rate = $5, expertise = $6, updated_at = NOW()
		WHERE id = $7`,
		mentor.Headline, mentor.Bio, mentor.Company, mentor.YearsExperience,
		mentor.HourlyRate, mentor.Expertise, mentor.ID)
	if err != nil {
		return fmt.Errorf("error updating mentor profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMentorNotFound
	}
	return nil
}

// SetVerificationStatus records the admin moderation decision
func (r *MentorRepository) SetVerificationStatus(ctx context.Context, mentorID int64, status models.VerificationStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE mentors SET verification_status = $1, updated_at = NOW() WHERE id = $2`,
		status, mentorID)
	if err != nil {
		return fmt.Errorf("error updating verification status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMentorNotFound
	}
	return nil
}

// GetAvailability retrieves a mentor's weekly availability slots
func (r *MentorRepository) GetAvailability(ctx context.Context, mentorID int64) ([]models.AvailabilitySlot, error) {
	query := `
		SELECT id, mentor_id, day_of_week, start_time, end_time
		FROM mentor_availability
		WHERE mentor_id = $1
		ORDER BY day_of_week, start_time
	`

	rows, err := r.db.Query(ctx, query, mentorID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving availability: %w", err)
	}
	defer rows.Close()

	var slots []models.AvailabilitySlot
	for rows.Next() {
		var s models.AvailabilitySlot
		if err := rows.Scan(&s.ID, &s.MentorID, &s.DayOfWeek, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("error scanning availability row: %w", err)
		}
		slots = append(slots, s)
	}

	return slots, rows.Err()
}

// ReplaceAvailability swaps the whole availability schedule in one transaction
func (r *MentorRepository) ReplaceAvailability(ctx context.Context, mentorID int64, slots []models.AvailabilitySlot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM mentor_availability WHERE mentor_id = $1`, mentorID); err != nil {
		return fmt.Errorf("error clearing availability: %w", err)
	}

	for _, s := range slots {
		_, err := tx.Exec(ctx, `
			INSERT INTO mentor_availability (mentor_id, day_of_week, start_time, end_time)
			VALUES ($1, $2, $3, $4)`,
			mentorID, s.DayOfWeek, s.StartTime, s.EndTime)
		if err != nil {
			return fmt.Errorf("error inserting availability slot: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetReviews retrieves all reviews for a mentor, newest first
func (r *MentorRepository) GetReviews(ctx context.Context, mentorID int64) ([]models.MentorReview, error) {
	query := `
		SELECT id, mentor_id, student_id, session_id, rating, comment, created_at
		FROM mentor_reviews
		WHERE mentor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, mentorID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving mentor reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.MentorReview
	for rows.Next() {
		var rev models.MentorReview
		if err := rows.Scan(&rev.ID, &rev.MentorID, &rev.StudentID, &rev.SessionID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	return reviews, rows.Err()
}

// AddReviewAndRecompute appends a review and recomputes the mentor's average
// rating as the rounded mean of all review ratings. Runs inside the caller's
// transaction when tx is non-nil so the session feedback write stays atomic
// with the review.
func (r *MentorRepository) AddReviewAndRecompute(ctx context.Context, tx pgx.Tx, review *models.MentorReview) error {
	insert := `
		INSERT INTO mentor_reviews (mentor_id, student_id, session_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	recompute := `
		UPDATE mentors m
		SET average_rating = sub.avg_rating,
		    rating_count  = sub.cnt,
		    updated_at    = NOW()
		FROM (
			SELECT ROUND(AVG(rating)::numeric, 1) AS avg_rating, COUNT(*) AS cnt
			FROM mentor_reviews
			WHERE mentor_id = $1
		) sub
		WHERE m.id = $1
	`

	if tx != nil {
		if err := tx.QueryRow(ctx, insert, review.MentorID, review.StudentID, review.SessionID, review.Rating, review.Comment).
			Scan(&review.ID, &review.CreatedAt); err != nil {
			return fmt.Errorf("error inserting mentor review: %w", err)
		}
		if _, err := tx.Exec(ctx, recompute, review.MentorID); err != nil {
			return fmt.Errorf("error recomputing mentor rating: %w", err)
		}
		return nil
	}

	if err := r.db.QueryRow(ctx, insert, review.MentorID, review.StudentID, review.SessionID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt); err != nil {
		return fmt.Errorf("error inserting mentor review: %w", err)
	}
	if _, err := r.db.Exec(ctx, recompute, review.MentorID); err != nil {
		return fmt.Errorf("error recomputing mentor rating: %w", err)
	}
	return nil
}

// AddSessionTotals folds a completed session into the mentor's running totals
func (r *MentorRepository) AddSessionTotals(ctx context.Context, mentorID int64, durationMinutes int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE mentors
		SET total_sessions = total_sessions + 1,
		    total_hours    = total_hours + $1,
		    updated_at     = NOW()
		WHERE id = $2`,
		float64(durationMinutes)/60.0, mentorID)
	if err != nil {
		return fmt.Errorf("error updating mentor totals: %w", err)
	}
	return nil
}
