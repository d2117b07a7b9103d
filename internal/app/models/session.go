package models

import "time"

// SessionFeedback holds one side's rating and comment for a completed session
type SessionFeedback struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Session is one scheduled mentoring engagement between a student and a mentor.
// Status moves SCHEDULED -> CONFIRMED -> IN_PROGRESS -> COMPLETED, with side
// exits to CANCELLED and NO_SHOW. Transitions never leave a terminal state.
type Session struct {
	ID              int64         `json:"id" db:"id"`
	StudentID       int64         `json:"studentId" db:"student_id"`
	MentorID        int64         `json:"mentorId" db:"mentor_id"`
	Title           string        `json:"title" db:"title"`
	Description     string        `json:"description" db:"description"`
	ScheduledAt     time.Time     `json:"scheduledAt" db:"scheduled_at"`
	DurationMinutes int           `json:"durationMinutes" db:"duration_minutes"`
	Status          SessionStatus `json:"status" db:"status"`
	SessionType     SessionType   `json:"sessionType" db:"session_type"`
	MeetingLink     *string       `json:"meetingLink,omitempty" db:"meeting_link"`

	// Stamped while the session runs
	ActualStartTime *time.Time `json:"actualStartTime,omitempty" db:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actualEndTime,omitempty" db:"actual_end_time"`
	ActualDuration  *int       `json:"actualDuration,omitempty" db:"actual_duration"` // Minutes

	// Feedback, at most one submission per side
	StudentFeedback *SessionFeedback `json:"studentFeedback,omitempty"`
	MentorFeedback  *SessionFeedback `json:"mentorFeedback,omitempty"`

	// Cancellation record
	CancelledBy  *RoleType  `json:"cancelledBy,omitempty" db:"cancelled_by"`
	CancelReason *string    `json:"cancelReason,omitempty" db:"cancel_reason"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty" db:"cancelled_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Mentor  *Mentor  `json:"mentor,omitempty"`
}

// IsOverdue reports whether a session is still SCHEDULED past its date.
// Overdue is a derived view only, no automatic transition fires.
func (s *Session) IsOverdue(now time.Time) bool {
	return s.Status == SessionScheduled && s.ScheduledAt.Before(now)
}

// CanTransitionTo reports whether moving from the current status to target is
// allowed. Transitions are monotonic: terminal states are never left, and the
// ordered states only move forward.
func (s *Session) CanTransitionTo(target SessionStatus) bool {
	if s.Status.IsTerminal() {
		return false
	}

	switch target {
	case SessionConfirmed:
		return s.Status == SessionScheduled
	case SessionInProgress:
		return s.Status == SessionScheduled || s.Status == SessionConfirmed
	case SessionCompleted:
		return s.Status == SessionConfirmed || s.Status == SessionInProgress
	case SessionNoShow:
		return s.Status == SessionScheduled || s.Status == SessionConfirmed
	case SessionCancelled:
		// Cancellation goes through Cancel, not a plain status update
		return false
	default:
		return false
	}
}
