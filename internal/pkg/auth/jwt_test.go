package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mentorlink/backend/internal/app/models"
)

func testService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "mentorlink.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Email:    "student@example.com",
		RoleType: models.RoleStudent,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("GenerateTokenPair() returned empty tokens")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != int((720 * time.Hour).Seconds()) {
		t.Errorf("refreshExpiresIn = %d, want %d", refreshExpiresIn, int((720*time.Hour).Seconds()))
	}

	claims, err := svc.ValidateAndExtractClaims(access)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "student@example.com" {
		t.Errorf("Email = %s, want student@example.com", claims.Email)
	}
	if claims.RoleType != string(models.RoleStudent) {
		t.Errorf("RoleType = %s, want STUDENT", claims.RoleType)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	access, _, _, _, err := testService(time.Hour).GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", AccessTokenExp: time.Hour})
	if _, err := other.ValidateToken(access); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateTokenReportsExpiry(t *testing.T) {
	svc := testService(-time.Minute)

	access, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	_, err = svc.ValidateToken(access)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing prefix", "abc.def.ghi", "", true},
		{"empty header", "", "", true},
		{"wrong scheme", "Basic dXNlcg==", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tc.header)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("ExtractBearerToken() error = %v, want ErrInvalidFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractBearerToken() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("ExtractBearerToken() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateAndExtractClaimsRejectsEmpty(t *testing.T) {
	svc := testService(time.Hour)
	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateAndExtractClaims(\"\") error = %v, want ErrInvalidToken", err)
	}
}
