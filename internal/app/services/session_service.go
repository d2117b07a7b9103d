package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/db"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
	"github.com/mentorlink/backend/internal/pkg/email"
)

// SessionStore is the persistence surface the session service depends on
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	HasBookingAt(ctx context.Context, studentID int64, scheduledAt time.Time) (bool, error)
	SetMeetingLink(ctx context.Context, sessionID int64, link string) error
	UpdateStatus(ctx context.Context, session *models.Session) error
	Cancel(ctx context.Context, sessionID int64, by models.RoleType, reason string, at time.Time) error
	SetStudentFeedback(ctx context.Context, tx pgx.Tx, sessionID int64, fb models.SessionFeedback) error
	SetMentorFeedback(ctx context.Context, sessionID int64, fb models.SessionFeedback) error
	ListForStudent(ctx context.Context, studentID int64, filter dto.SessionFilter) ([]*models.Session, int64, error)
	ListForMentor(ctx context.Context, mentorID int64, filter dto.SessionFilter) ([]*models.Session, int64, error)
}

// MentorStore is the mentor-side surface the session service depends on
type MentorStore interface {
	GetByID(ctx context.Context, id int64) (*models.Mentor, error)
	AddReviewAndRecompute(ctx context.Context, tx pgx.Tx, review *models.MentorReview) error
	AddSessionTotals(ctx context.Context, mentorID int64, durationMinutes int) error
}

// StudentStore is the student-side surface the session service depends on
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	IncrementSessionsAttended(ctx context.Context, studentID int64) error
}

// UserStore resolves the account behind a profile, for notifications
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// TxRunner executes fn transactionally. The production runner wraps a pgx
// pool; tests swap in a pass-through that hands fn a nil transaction.
type TxRunner func(ctx context.Context, fn db.TransactionFn) error

// PoolTxRunner returns the production TxRunner backed by pool
func PoolTxRunner(pool *pgxpool.Pool) TxRunner {
	return func(ctx context.Context, fn db.TransactionFn) error {
		return db.WithTransaction(ctx, pool, fn)
	}
}

// SessionService owns the session life cycle: booking, status transitions,
// cancellation and feedback
type SessionService struct {
	sessions SessionStore
	mentors  MentorStore
	students StudentStore
	users    UserStore
	runTx    TxRunner
	email    email.Service
	baseURL  string
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessions SessionStore,
	mentors MentorStore,
	students StudentStore,
	users UserStore,
	runTx TxRunner,
	emailService email.Service,
	baseURL string,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		mentors:  mentors,
		students: students,
		users:    users,
		runTx:    runTx,
		email:    emailService,
		baseURL:  baseURL,
		now:      time.Now,
		logger:   logger,
	}
}

// Book creates a SCHEDULED session between the student and an approved
// mentor. A slot is taken when the student already holds a SCHEDULED or
// CONFIRMED session starting at exactly the same instant.
func (s *SessionService) Book(ctx context.Context, studentID int64, req dto.BookSessionRequest) (*models.Session, error) {
	mentor, err := s.mentors.GetByID(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}
	if mentor.VerificationStatus != models.VerificationApproved {
		return nil, apperrors.ErrMentorNotApproved
	}

	taken, err := s.sessions.HasBookingAt(ctx, studentID, req.ScheduledAt)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrBookingConflict
	}

	session := &models.Session{
		StudentID:       studentID,
		MentorID:        mentor.ID,
		Title:           req.Title,
		Description:     req.Description,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Status:          models.SessionScheduled,
		SessionType:     models.SessionType(req.SessionType),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	// Video sessions get a meeting link derived from the session identity
	if session.SessionType == models.SessionTypeVideo {
		link := fmt.Sprintf("%s/video/session-%d", s.baseURL, session.ID)
		if err := s.sessions.SetMeetingLink(ctx, session.ID, link); err != nil {
			return nil, err
		}
		session.MeetingLink = &link
	}

	s.notifyMentorBooked(ctx, session, mentor)

	s.logger.Info().
		Int64("sessionId", session.ID).
		Int64("studentId", studentID).
		Int64("mentorId", mentor.ID).
		Time("scheduledAt", req.ScheduledAt).
		Msg("Session booked")

	return session, nil
}

// notifyMentorBooked emails the mentor about a new booking. Failures are
// logged, never surfaced to the booking student.
func (s *SessionService) notifyMentorBooked(ctx context.Context, session *models.Session, mentor *models.Mentor) {
	mentorUser, err := s.users.GetByID(ctx, mentor.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("mentorId", mentor.ID).Msg("Failed to resolve mentor account for booking email")
		return
	}

	studentName := "A student"
	if student, err := s.students.GetByID(ctx, session.StudentID); err == nil {
		if studentUser, err := s.users.GetByID(ctx, student.UserID); err == nil {
			studentName = studentUser.FullName()
		}
	}

	when := session.ScheduledAt.Format(time.RFC1123)
	if err := s.email.SendBookingEmail(mentorUser.Email, mentorUser.FullName(), studentName, session.Title, when); err != nil {
		s.logger.Warn().Err(err).Int64("sessionId", session.ID).Msg("Failed to send booking email")
	}
}

// Get retrieves a session, allowing only its participants (or an admin)
func (s *SessionService) Get(ctx context.Context, sessionID int64, actor Actor) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !actor.participates(session) {
		return nil, apperrors.ErrPermissionDenied
	}
	return session, nil
}

// Actor identifies who is acting on a session. StudentID and MentorID are
// profile IDs, zero for roles that have no such profile.
type Actor struct {
	Role      models.RoleType
	StudentID int64
	MentorID  int64
}

func (a Actor) participates(session *models.Session) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	if a.StudentID != 0 && session.StudentID == a.StudentID {
		return true
	}
	if a.MentorID != 0 && session.MentorID == a.MentorID {
		return true
	}
	return false
}

func (a Actor) ownsAsMentor(session *models.Session) bool {
	return a.Role == models.RoleAdmin || (a.MentorID != 0 && session.MentorID == a.MentorID)
}

func (a Actor) ownsAsStudent(session *models.Session) bool {
	return a.Role == models.RoleAdmin || (a.StudentID != 0 && session.StudentID == a.StudentID)
}

// UpdateStatus moves a session along its life cycle. Only the session's
// mentor (or an admin) drives transitions. They are monotonic and terminal
// states are never left. Completing a session stamps actual times and folds
// the duration into the mentor's and student's totals.
func (s *SessionService) UpdateStatus(ctx context.Context, sessionID int64, actor Actor, target models.SessionStatus) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !actor.ownsAsMentor(session) {
		return nil, apperrors.ErrPermissionDenied
	}

	if !session.CanTransitionTo(target) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("cannot move session from %s to %s", session.Status, target),
			apperrors.ErrInvalidTransition)
	}

	now := s.now()

	switch target {
	case models.SessionInProgress:
		session.ActualStartTime = &now
	case models.SessionCompleted:
		if session.ActualStartTime == nil {
			// Sessions completed straight from CONFIRMED count from their
			// scheduled start
			start := session.ScheduledAt
			session.ActualStartTime = &start
		}
		session.ActualEndTime = &now
		minutes := int(now.Sub(*session.ActualStartTime).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		session.ActualDuration = &minutes
	}

	session.Status = target
	if err := s.sessions.UpdateStatus(ctx, session); err != nil {
		return nil, err
	}

	if target == models.SessionCompleted {
		if err := s.mentors.AddSessionTotals(ctx, session.MentorID, *session.ActualDuration); err != nil {
			return nil, err
		}
		if err := s.students.IncrementSessionsAttended(ctx, session.StudentID); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Int64("sessionId", session.ID).
		Str("status", string(target)).
		Msg("Session status updated")

	return session, nil
}

// Cancel moves a non-terminal session to CANCELLED, recording who cancelled
// and why. Cancellation belongs to the session's student (or an admin).
func (s *SessionService) Cancel(ctx context.Context, sessionID int64, actor Actor, reason string) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !actor.ownsAsStudent(session) {
		return nil, apperrors.ErrPermissionDenied
	}

	if session.Status == models.SessionCancelled {
		return nil, apperrors.ErrSessionAlreadyCancelled
	}
	if session.Status.IsTerminal() {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("cannot cancel a %s session", session.Status),
			apperrors.ErrInvalidTransition)
	}

	now := s.now()
	if err := s.sessions.Cancel(ctx, sessionID, actor.Role, reason, now); err != nil {
		return nil, err
	}

	session.Status = models.SessionCancelled
	role := actor.Role
	session.CancelledBy = &role
	session.CancelReason = &reason
	session.CancelledAt = &now

	return session, nil
}

// SubmitStudentFeedback records the student's one-time feedback on a
// COMPLETED session. The feedback write and the mentor review append (with
// its rating recompute) commit in one transaction.
func (s *SessionService) SubmitStudentFeedback(ctx context.Context, sessionID, studentID int64, req dto.SessionFeedbackRequest) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}
	if session.Status != models.SessionCompleted {
		return nil, apperrors.ErrSessionNotCompleted
	}
	if session.StudentFeedback != nil {
		return nil, apperrors.ErrFeedbackAlreadyGiven
	}

	fb := models.SessionFeedback{
		Rating:      req.Rating,
		Comment:     req.Comment,
		SubmittedAt: s.now(),
	}

	err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.sessions.SetStudentFeedback(ctx, tx, sessionID, fb); err != nil {
			return err
		}
		review := &models.MentorReview{
			MentorID:  session.MentorID,
			StudentID: session.StudentID,
			SessionID: session.ID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		return s.mentors.AddReviewAndRecompute(ctx, tx, review)
	})
	if err != nil {
		return nil, err
	}

	session.StudentFeedback = &fb
	return session, nil
}

// SubmitMentorFeedback records the mentor's one-time feedback on a COMPLETED
// session. Mentor feedback never touches any rating aggregate.
func (s *SessionService) SubmitMentorFeedback(ctx context.Context, sessionID, mentorID int64, req dto.SessionFeedbackRequest) (*models.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.MentorID != mentorID {
		return nil, apperrors.ErrPermissionDenied
	}
	if session.Status != models.SessionCompleted {
		return nil, apperrors.ErrSessionNotCompleted
	}
	if session.MentorFeedback != nil {
		return nil, apperrors.ErrFeedbackAlreadyGiven
	}

	fb := models.SessionFeedback{
		Rating:      req.Rating,
		Comment:     req.Comment,
		SubmittedAt: s.now(),
	}

	if err := s.sessions.SetMentorFeedback(ctx, sessionID, fb); err != nil {
		return nil, err
	}

	session.MentorFeedback = &fb
	return session, nil
}

// ListForStudent retrieves a student's sessions
func (s *SessionService) ListForStudent(ctx context.Context, studentID int64, filter dto.SessionFilter) ([]*models.Session, int64, error) {
	return s.sessions.ListForStudent(ctx, studentID, filter)
}

// ListForMentor retrieves a mentor's sessions
func (s *SessionService) ListForMentor(ctx context.Context, mentorID int64, filter dto.SessionFilter) ([]*models.Session, int64, error) {
	return s.sessions.ListForMentor(ctx, mentorID, filter)
}
