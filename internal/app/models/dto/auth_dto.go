package dto

// RegisterStudentRequest is the payload to register a student account
type RegisterStudentRequest struct {
	Email      string   `json:"email" binding:"required,email,max=255"`
	Password   string   `json:"password" binding:"required,min=8,max=72"`
	FirstName  string   `json:"firstName" binding:"required,max=100"`
	LastName   string   `json:"lastName" binding:"required,max=100"`
	School     string   `json:"school" binding:"required,max=255"`
	GradeLevel string   `json:"gradeLevel" binding:"omitempty,max=50"`
	Interests  []string `json:"interests" binding:"omitempty,dive,max=100"`
}

// RegisterMentorRequest is the payload to register a mentor account.
// The mentor starts in PENDING verification state.
type RegisterMentorRequest struct {
	Email           string   `json:"email" binding:"required,email,max=255"`
	Password        string   `json:"password" binding:"required,min=8,max=72"`
	FirstName       string   `json:"firstName" binding:"required,max=100"`
	LastName        string   `json:"lastName" binding:"required,max=100"`
	Headline        string   `json:"headline" binding:"required,max=255"`
	Bio             string   `json:"bio" binding:"omitempty,max=2000"`
	Company         string   `json:"company" binding:"omitempty,max=255"`
	YearsExperience int      `json:"yearsExperience" binding:"gte=0,lte=60"`
	HourlyRate      float64  `json:"hourlyRate" binding:"gte=0"`
	Expertise       []string `json:"expertise" binding:"required,min=1,dive,max=100"`
}

// LoginRequest is the payload for user authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the payload to exchange a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`        // Seconds
	RefreshExpiresIn int    `json:"refreshExpiresIn"` // Seconds
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// AuthResponse is returned after register/login
type AuthResponse struct {
	UserID   int64         `json:"userId"`
	Email    string        `json:"email"`
	RoleType string        `json:"roleType"`
	Token    TokenResponse `json:"token"`
}
