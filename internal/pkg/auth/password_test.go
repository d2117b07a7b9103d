package auth

import "testing"

func TestCheckPasswordVerifiesHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("CheckPassword() = false for the correct password")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Error("CheckPassword() = true for a wrong password")
	}
	if CheckPassword("not-a-hash", "s3cret-pass") {
		t.Error("CheckPassword() = true against a malformed hash")
	}
}
