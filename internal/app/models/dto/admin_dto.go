package dto

// ReviewMentorRequest is the admin moderation decision for a pending mentor
type ReviewMentorRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Note     string `json:"note" binding:"omitempty,max=1000"`
}

// SetUserActiveRequest activates or deactivates a user account
type SetUserActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// HealthResponse reports service status and configured rate limits
type HealthResponse struct {
	Status    string         `json:"status" example:"ok"`
	Mode      string         `json:"mode" example:"development"`
	RateLimit RateLimitInfo  `json:"rateLimit"`
}

// RateLimitInfo is the configured rate-limit surface of the health endpoint
type RateLimitInfo struct {
	Enabled           bool `json:"enabled"`
	RequestsPerWindow int  `json:"requestsPerWindow"`
	WindowSeconds     int  `json:"windowSeconds"`
}
