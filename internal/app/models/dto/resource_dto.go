package dto

// CreateResourceRequest is the payload to publish a resource
type CreateResourceRequest struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Description  string   `json:"description" binding:"omitempty,max=5000"`
	ResourceType string   `json:"resourceType" binding:"required,oneof=SCHOLARSHIP GUIDE ARTICLE"`
	URL          string   `json:"url" binding:"omitempty,url,max=2000"`
	Eligibility  string   `json:"eligibility" binding:"omitempty,max=2000"`
	Tags         []string `json:"tags" binding:"omitempty,dive,max=100"`
}

// UpdateResourceRequest mutates an existing resource
type UpdateResourceRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	URL         *string  `json:"url" binding:"omitempty,url,max=2000"`
	Eligibility *string  `json:"eligibility" binding:"omitempty,max=2000"`
	Tags        []string `json:"tags" binding:"omitempty,dive,max=100"`
}

// ResourceReviewRequest is the payload for reviewing a resource
type ResourceReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// ResourceFilter carries resource listing filters
type ResourceFilter struct {
	ResourceType *string
	Tag          *string
	Search       *string
	Page         int
	PageSize     int
}
