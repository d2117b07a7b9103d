package models

import "time"

// Mentor defines the mentor profile based on the 'mentors' table (1:1 with users)
type Mentor struct {
	ID                 int64              `json:"id" db:"id"`
	UserID             int64              `json:"userId" db:"user_id"`
	Headline           string             `json:"headline" db:"headline"` // e.g. "Senior Backend Engineer"
	Bio                string             `json:"bio" db:"bio"`
	Company            string             `json:"company" db:"company"`
	YearsExperience    int                `json:"yearsExperience" db:"years_experience"`
	HourlyRate         float64            `json:"hourlyRate" db:"hourly_rate"`
	Expertise          []string           `json:"expertise" db:"expertise"`
	VerificationStatus VerificationStatus `json:"verificationStatus" db:"verification_status"`
	AverageRating      float64            `json:"averageRating" db:"average_rating"` // Rounded to one decimal place
	RatingCount        int                `json:"ratingCount" db:"rating_count"`
	TotalSessions      int                `json:"totalSessions" db:"total_sessions"`
	TotalHours         float64            `json:"totalHours" db:"total_hours"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User         *User              `json:"user,omitempty"`
	Availability []AvailabilitySlot `json:"availability,omitempty"`
	Reviews      []MentorReview     `json:"reviews,omitempty"`
}

// AvailabilitySlot is one weekly time window a mentor accepts bookings in
type AvailabilitySlot struct {
	ID        int64  `json:"id" db:"id"`
	MentorID  int64  `json:"mentorId" db:"mentor_id"`
	DayOfWeek int    `json:"dayOfWeek" db:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime string `json:"startTime" db:"start_time"`  // "HH:MM", 24h
	EndTime   string `json:"endTime" db:"end_time"`
}

// MentorReview is a rating+comment left by a student against a mentor.
// One review is appended per student-side session feedback.
type MentorReview struct {
	ID        int64     `json:"id" db:"id"`
	MentorID  int64     `json:"mentorId" db:"mentor_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	SessionID int64     `json:"sessionId" db:"session_id"`
	Rating    int       `json:"rating" db:"rating"` // 1..5
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
