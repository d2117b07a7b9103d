package dto

import "time"

// BookSessionRequest is the payload for booking a session with a mentor
type BookSessionRequest struct {
	MentorID        int64     `json:"mentorId" binding:"required,gt=0"`
	Title           string    `json:"title" binding:"required,max=255"`
	Description     string    `json:"description" binding:"omitempty,max=2000"`
	ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,gte=15,lte=240"`
	SessionType     string    `json:"sessionType" binding:"required,oneof=VIDEO CHAT IN_PERSON"`
}

// UpdateSessionStatusRequest is the mentor-initiated status transition payload
type UpdateSessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED IN_PROGRESS COMPLETED NO_SHOW"`
}

// CancelSessionRequest records why a session was cancelled
type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// SessionFeedbackRequest is the payload for submitting one side's feedback
type SessionFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// SessionFilter carries session listing filters
type SessionFilter struct {
	Status   *string
	Overdue  bool // Only SCHEDULED sessions past their date
	Page     int
	PageSize int
}
