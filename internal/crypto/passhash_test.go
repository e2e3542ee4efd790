package crypto

import (
	"strings"
	"testing"
)

func TestHashVerifyPassword(t *testing.T) {
	hash, err := HashPassword("longenough12")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if strings.Contains(string(hash), "longenough12") {
		t.Fatalf("hash must not embed the plaintext")
	}
	if !VerifyPassword("longenough12", hash) {
		t.Fatalf("correct password must verify")
	}
	if VerifyPassword("wrongpassword", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("longenough12")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("longenough12")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if string(a) == string(b) {
		t.Fatalf("two hashes of the same password must differ (per-hash salt)")
	}
}
