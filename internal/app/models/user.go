package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"user@example.com"`                             // User's email address
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`                                // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`                                   // User's last name
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                               // User's role (STUDENT, MENTOR or ADMIN)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	IsVerified  bool       `json:"isVerified" db:"is_verified" example:"false"`                             // Whether the email address was verified
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns the display name used in notifications
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RefreshToken represents a stored refresh token for a user
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
