package utils

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "Abcdef1!" {
		t.Error("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("unexpected digest format: %s", hash)
	}
	if !VerifyPassword("Abcdef1!", hash) {
		t.Error("correct password did not verify")
	}
	if VerifyPassword("Abcdef2!", hash) {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("Abcdef1!")
	if err != nil {
		t.Fatal(err)
	}
	second, err := HashPassword("Abcdef1!")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "plaintext", "$2a$10$short"} {
		if VerifyPassword("Abcdef1!", digest) {
			t.Errorf("digest %q verified", digest)
		}
	}
}

func TestGenerateRandomString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		s := GenerateRandomString(24)
		if len(s) != 24 {
			t.Fatalf("expected length 24, got %d", len(s))
		}
		if seen[s] {
			t.Fatalf("duplicate random string %s", s)
		}
		seen[s] = true
	}
}
