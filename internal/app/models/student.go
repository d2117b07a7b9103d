package models

import "time"

// CareerScore is one entry of a student's quiz recommendation list
type CareerScore struct {
	Career string `json:"career"`
	Score  int    `json:"score"`
}

// Student defines the student profile based on the 'students' table (1:1 with users)
type Student struct {
	ID                 int64         `json:"id" db:"id"`
	UserID             int64         `json:"userId" db:"user_id"`
	School             string        `json:"school" db:"school"`
	GradeLevel         string        `json:"gradeLevel" db:"grade_level"`
	Bio                string        `json:"bio" db:"bio"`
	Interests          []string      `json:"interests" db:"interests"`
	RecommendedCareers []CareerScore `json:"recommendedCareers" db:"recommended_careers"` // Latest quiz result, jsonb
	QuizTakenAt        *time.Time    `json:"quizTakenAt,omitempty" db:"quiz_taken_at"`
	SessionsAttended   int           `json:"sessionsAttended" db:"sessions_attended"`
	CreatedAt          time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}
