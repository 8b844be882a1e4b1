package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("hash must not equal plaintext")
	}

	if !VerifyPassword("hunter2", hash) {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	// A malformed digest must fail verification, never panic or error out.
	if VerifyPassword("hunter2", "not-a-bcrypt-digest") {
		t.Error("expected malformed digest to fail verification")
	}
	if VerifyPassword("hunter2", "") {
		t.Error("expected empty digest to fail verification")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, _ := HashPassword("same-password")
	h2, _ := HashPassword("same-password")
	if h1 == h2 {
		t.Error("expected distinct digests for the same password")
	}
}
