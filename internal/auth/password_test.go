package auth

import (
	"strings"
	"testing"
)

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash must not equal plaintext")
	}
	if err := ComparePassword(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatalf("expected password mismatch")
	}
}

func TestPasswordTruncationBoundary(t *testing.T) {
	// bcrypt input stops at 72 bytes; passwords sharing their first 72
	// bytes are indistinguishable. Documented limitation.
	base := strings.Repeat("a", 72)
	hash, err := HashPassword(base+"tail-one", 4)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := ComparePassword(hash, base+"tail-two"); err != nil {
		t.Fatalf("expected 72-byte prefix match to verify: %v", err)
	}
	if err := ComparePassword(hash, strings.Repeat("b", 72)); err == nil {
		t.Fatalf("expected different prefix to fail")
	}
}
