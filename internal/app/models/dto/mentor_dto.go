package dto

import "github.com/mentorlink/backend/internal/app/models"

// MentorFilter carries the directory listing filters
type MentorFilter struct {
	Expertise *string  // Single expertise tag
	Search    *string  // Matches name or headline
	MinRating *float64 // Minimum average rating
	MaxRate   *float64 // Maximum hourly rate
	Page      int
	PageSize  int
}

// UpdateMentorProfileRequest mutates the mentor's professional info
type UpdateMentorProfileRequest struct {
	Headline        *string  `json:"headline" binding:"omitempty,max=255"`
	Bio             *string  `json:"bio" binding:"omitempty,max=2000"`
	Company         *string  `json:"company" binding:"omitempty,max=255"`
	YearsExperience *int     `json:"yearsExperience" binding:"omitempty,gte=0,lte=60"`
	HourlyRate      *float64 `json:"hourlyRate" binding:"omitempty,gte=0"`
	Expertise       []string `json:"expertise" binding:"omitempty,min=1,dive,max=100"`
}

// AvailabilitySlotRequest is one weekly availability window
type AvailabilitySlotRequest struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"gte=0,lte=6"`
	StartTime string `json:"startTime" binding:"required,len=5"` // "HH:MM"
	EndTime   string `json:"endTime" binding:"required,len=5"`
}

// UpdateAvailabilityRequest replaces the mentor's availability schedule
type UpdateAvailabilityRequest struct {
	Slots []AvailabilitySlotRequest `json:"slots" binding:"required,dive"`
}

// MentorSummary is the directory list item
type MentorSummary struct {
	ID            int64    `json:"id"`
	UserID        int64    `json:"userId"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Headline      string   `json:"headline"`
	Company       string   `json:"company"`
	Expertise     []string `json:"expertise"`
	HourlyRate    float64  `json:"hourlyRate"`
	AverageRating float64  `json:"averageRating"`
	RatingCount   int      `json:"ratingCount"`
	TotalSessions int      `json:"totalSessions"`
}

// FromMentor converts a mentor model (with user relation) to a summary
func FromMentor(m *models.Mentor) MentorSummary {
	s := MentorSummary{
		ID:            m.ID,
		UserID:        m.UserID,
		Headline:      m.Headline,
		Company:       m.Company,
		Expertise:     m.Expertise,
		HourlyRate:    m.HourlyRate,
		AverageRating: m.AverageRating,
		RatingCount:   m.RatingCount,
		TotalSessions: m.TotalSessions,
	}
	if m.User != nil {
		s.FirstName = m.User.FirstName
		s.LastName = m.User.LastName
	}
	return s
}
