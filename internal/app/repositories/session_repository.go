package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/helpers"
)

// SessionRepository handles database operations for mentoring sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, student_id, mentor_id, title, description, scheduled_at, duration_minutes,
	status, session_type, meeting_link, actual_start_time, actual_end_time, actual_duration,
	student_rating, student_comment, student_feedback_at,
	mentor_rating, mentor_comment, mentor_feedback_at,
	cancelled_by, cancel_reason, cancelled_at, created_at, updated_at`

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	var studentRating, mentorRating *int
	var studentComment, mentorComment *string
	var studentFeedbackAt, mentorFeedbackAt *time.Time

	err := row.Scan(
		&s.ID,
		&s.StudentID,
		&s.MentorID,
		&s.Title,
		&s.Description,
		&s.ScheduledAt,
		&s.DurationMinutes,
		&s.Status,
		&s.SessionType,
		&s.MeetingLink,
		&s.ActualStartTime,
		&s.ActualEndTime,
		&s.ActualDuration,
		&studentRating,
		&studentComment,
		&studentFeedbackAt,
		&mentorRating,
		&mentorComment,
		&mentorFeedbackAt,
		&s.CancelledBy,
		&s.CancelReason,
		&s.CancelledAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if studentRating != nil && studentFeedbackAt != nil {
		fb := &models.SessionFeedback{Rating: *studentRating, SubmittedAt: *studentFeedbackAt}
		if studentComment != nil {
			fb.Comment = *studentComment
		}
		s.StudentFeedback = fb
	}
	if mentorRating != nil && mentorFeedbackAt != nil {
		fb := &models.SessionFeedback{Rating: *mentorRating, SubmittedAt: *mentorFeedbackAt}
		if mentorComment != nil {
			fb.Comment = *mentorComment
		}
		s.MentorFeedback = fb
	}

	return &s, nil
}

// Create inserts a new session in SCHEDULED state
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (student_id, mentor_id, title, description, scheduled_at,
		                      duration_minutes, status, session_type, meeting_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		session.StudentID, session.MentorID, session.Title, session.Description,
		session.ScheduledAt, session.DurationMinutes, session.Status,
		session.SessionType, session.MeetingLink).
		Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return session, nil
}

// HasBookingAt reports whether the student already holds an active booking
// at exactly the given start instant. Only SCHEDULED and CONFIRMED sessions
// block a slot, and only an identical start timestamp counts as a conflict.
func (r *SessionRepository) HasBookingAt(ctx context.Context, studentID int64, scheduledAt time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE student_id = $1 AND scheduled_at = $2
			  AND status IN ('SCHEDULED', 'CONFIRMED')
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, studentID, scheduledAt).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking booking slot: %w", err)
	}

	return exists, nil
}

// SetMeetingLink stores the generated meeting link
func (r *SessionRepository) SetMeetingLink(ctx context.Context, sessionID int64, link string) error {
	_, err := r.db.Exec(ctx, `UPDATE sessions SET meeting_link = $1, updated_at = NOW() WHERE id = $2`,
		link, sessionID)
	if err != nil {
		return fmt.Errorf("error setting meeting link: %w", err)
	}
	return nil
}

// UpdateStatus moves the session to a new status, stamping actual start and
// end times when appropriate
func (r *SessionRepository) UpdateStatus(ctx context.Context, session *models.Session) error {
	result, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET status = $1, actual_start_time = $2, actual_end_time = $3,
		    actual_duration = $4, updated_at = NOW()
		WHERE id = $5`,
		session.Status, session.ActualStartTime, session.ActualEndTime,
		session.ActualDuration, session.ID)
	if err != nil {
		return fmt.Errorf("error updating session status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// Cancel records a cancellation with who and why
func (r *SessionRepository) Cancel(ctx context.Context, sessionID int64, by models.RoleType, reason string, at time.Time) error {
	result, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET status = $1, cancelled_by = $2, cancel_reason = $3, cancelled_at = $4, updated_at = NOW()
		WHERE id = $5`,
		models.SessionCancelled, by, reason, at, sessionID)
	if err != nil {
		return fmt.Errorf("error cancelling session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// SetStudentFeedback records the student's one-time feedback. Runs inside the
// caller's transaction when tx is non-nil so the mentor review append stays
// atomic with it.
func (r *SessionRepository) SetStudentFeedback(ctx context.Context, tx pgx.Tx, sessionID int64, fb models.SessionFeedback) error {
	query := `
		UPDATE sessions
		SET student_rating = $1, student_comment = $2, student_feedback_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	var err error
	if tx != nil {
		_, err = tx.Exec(ctx, query, fb.Rating, fb.Comment, fb.SubmittedAt, sessionID)
	} else {
		_, err = r.db.Exec(ctx, query, fb.Rating, fb.Comment, fb.SubmittedAt, sessionID)
	}
	if err != nil {
		return fmt.Errorf("error saving student feedback: %w", err)
	}
	return nil
}

// SetMentorFeedback records the mentor's one-time feedback
func (r *SessionRepository) SetMentorFeedback(ctx context.Context, sessionID int64, fb models.SessionFeedback) error {
	_, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET mentor_rating = $1, mentor_comment = $2, mentor_feedback_at = $3, updated_at = NOW()
		WHERE id = $4`,
		fb.Rating, fb.Comment, fb.SubmittedAt, sessionID)
	if err != nil {
		return fmt.Errorf("error saving mentor feedback: %w", err)
	}
	return nil
}

// ListForStudent retrieves a student's sessions with optional status and
// overdue filters, newest scheduled first
func (r *SessionRepository) ListForStudent(ctx context.Context, studentID int64, filter dto.SessionFilter) ([]*models.Session, int64, error) {
	return r.list(ctx, "student_id", studentID, filter)
}

// ListForMentor retrieves a mentor's sessions with the same filters
func (r *SessionRepository) ListForMentor(ctx context.Context, mentorID int64, filter dto.SessionFilter) ([]*models.Session, int64, error) {
	return r.list(ctx, "mentor_id", mentorID, filter)
}

func (r *SessionRepository) list(ctx context.Context, ownerColumn string, ownerID int64, filter dto.SessionFilter) ([]*models.Session, int64, error) {
	queryBuilder := squirrel.Select(
		"id", "student_id", "mentor_id", "title", "description", "scheduled_at", "duration_minutes",
		"status", "session_type", "meeting_link", "actual_start_time", "actual_end_time", "actual_duration",
		"student_rating", "student_comment", "student_feedback_at",
		"mentor_rating", "mentor_comment", "mentor_feedback_at",
		"cancelled_by", "cancel_reason", "cancelled_at", "created_at", "updated_at",
	).
		From("sessions").
		Where(squirrel.Eq{ownerColumn: ownerID}).
		OrderBy("scheduled_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Overdue {
		// Overdue is derived: still SCHEDULED past its date
		queryBuilder = queryBuilder.
			Where(squirrel.Eq{"status": models.SessionScheduled}).
			Where("scheduled_at < NOW()")
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

	var sessions []*models.Session
	var total int64

	for rows.Next() {
		var s models.Session
		var studentRating, mentorRating *int
		var studentComment, mentorComment *string
		var studentFeedbackAt, mentorFeedbackAt *time.Time

		err := rows.Scan(
			&s.ID, &s.StudentID, &s.MentorID, &s.Title, &s.Description, &s.ScheduledAt, &s.DurationMinutes,
			&s.Status, &s.SessionType, &s.MeetingLink, &s.ActualStartTime, &s.ActualEndTime, &s.ActualDuration,
			&studentRating, &studentComment, &studentFeedbackAt,
			&mentorRating, &mentorComment, &mentorFeedbackAt,
			&s.CancelledBy, &s.CancelReason, &s.CancelledAt, &s.CreatedAt, &s.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning session row: %w", err)
		}

		if studentRating != nil && studentFeedbackAt != nil {
			fb := &models.SessionFeedback{Rating: *studentRating, SubmittedAt: *studentFeedbackAt}
			if studentComment != nil {
				fb.Comment = *studentComment
			}
			s.StudentFeedback = fb
		}
		if mentorRating != nil && mentorFeedbackAt != nil {
			fb := &models.SessionFeedback{Rating: *mentorRating, SubmittedAt: *mentorFeedbackAt}
			if mentorComment != nil {
				fb.Comment = *mentorComment
			}
			s.MentorFeedback = fb
		}

		sessions = append(sessions, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, total, nil
}
