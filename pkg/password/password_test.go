package password

import "testing"

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("password stored in clear text")
	}
	if !CheckPasswordHash("Secret123", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPasswordHash("secret123", hash) {
		t.Fatal("expected wrong password to fail")
	}
}
