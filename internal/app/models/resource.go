package models

import "time"

// Resource is an independent content entity (scholarship, guide or article)
type Resource struct {
	ID            int64        `json:"id" db:"id"`
	Title         string       `json:"title" db:"title"`
	Description   string       `json:"description" db:"description"`
	ResourceType  ResourceType `json:"resourceType" db:"resource_type"`
	URL           string       `json:"url" db:"url"`
	Eligibility   string       `json:"eligibility" db:"eligibility"` // Free-form eligibility metadata
	Tags          []string     `json:"tags" db:"tags"`
	CreatedBy     int64        `json:"createdBy" db:"created_by"`
	AverageRating float64      `json:"averageRating" db:"average_rating"` // Rounded to one decimal place
	RatingCount   int          `json:"ratingCount" db:"rating_count"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`

	Reviews []ResourceReview `json:"reviews,omitempty"`
}

// ResourceReview is a rating+comment left by a user against a resource.
// One review per user per resource.
type ResourceReview struct {
	ID         int64     `json:"id" db:"id"`
	ResourceID int64     `json:"resourceId" db:"resource_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Rating     int       `json:"rating" db:"rating"` // 1..5
	Comment    string    `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
