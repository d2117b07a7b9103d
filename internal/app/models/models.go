package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleMentor  RoleType = "MENTOR"
	RoleAdmin   RoleType = "ADMIN"
)

// VerificationStatus is the admin-controlled approval state of a mentor.
// Only APPROVED mentors are listed in the directory and bookable.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// SessionStatus represents the life cycle state of a mentoring session
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "SCHEDULED"
	SessionConfirmed  SessionStatus = "CONFIRMED"
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
	SessionCancelled  SessionStatus = "CANCELLED"
	SessionNoShow     SessionStatus = "NO_SHOW"
)

// IsTerminal reports whether no further status transition is allowed
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionCancelled || s == SessionNoShow
}

// SessionType defines how a session is held
type SessionType string

const (
	SessionTypeVideo    SessionType = "VIDEO"
	SessionTypeChat     SessionType = "CHAT"
	SessionTypeInPerson SessionType = "IN_PERSON"
)

// ResourceType categorizes shared content
type ResourceType string

const (
	ResourceScholarship ResourceType = "SCHOLARSHIP"
	ResourceGuide       ResourceType = "GUIDE"
	ResourceArticle     ResourceType = "ARTICLE"
)
