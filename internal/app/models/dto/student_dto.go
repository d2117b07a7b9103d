package dto

// UpdateStudentProfileRequest mutates the student's profile
type UpdateStudentProfileRequest struct {
	School     *string  `json:"school" binding:"omitempty,max=255"`
	GradeLevel *string  `json:"gradeLevel" binding:"omitempty,max=50"`
	Bio        *string  `json:"bio" binding:"omitempty,max=2000"`
	Interests  []string `json:"interests" binding:"omitempty,dive,max=100"`
}

// UpdateProfileRequest mutates the shared user fields
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
}
