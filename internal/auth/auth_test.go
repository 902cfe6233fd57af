package auth

import (
	"errors"
	"testing"
)

// PBKDF2-HMAC-SHA256("password", "salt", 1 iteration, 32 bytes).
const rfcHash = "120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b"

func TestVerifyKnownVector(t *testing.T) {
	s, err := ParseSecret(rfcHash, "c2FsdA==", "1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Verify("password"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := s.Verify("Password"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password err = %v", err)
	}
}

func TestDecodeSalt(t *testing.T) {
	b, err := DecodeSalt("c2FsdA==")
	if err != nil || string(b) != "salt" {
		t.Fatalf("base64: %q, %v", b, err)
	}
	// Not valid base64 (odd length), valid hex.
	b, err = DecodeSalt("73616c74ff")
	if err != nil || len(b) != 5 {
		t.Fatalf("hex fallback: %x, %v", b, err)
	}
	if _, err := DecodeSalt("!!not-a-salt!!"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseSecret(t *testing.T) {
	s, err := ParseSecret(rfcHash, "c2FsdA==", "")
	if err != nil {
		t.Fatal(err)
	}
	if s.Iterations != DefaultIterations {
		t.Fatalf("iterations = %d, want default", s.Iterations)
	}
	if _, err := ParseSecret("zz", "c2FsdA==", ""); err == nil {
		t.Fatal("bad hash accepted")
	}
	if _, err := ParseSecret(rfcHash, "c2FsdA==", "-5"); err == nil {
		t.Fatal("negative iterations accepted")
	}
}

func TestDeriveRoundTrip(t *testing.T) {
	s, err := Derive("hunter2", 1000)
	if err != nil {
		t.Fatal(err)
	}
	hash, salt, it := s.Encode()
	parsed, err := ParseSecret(hash, salt, it)
	if err != nil {
		t.Fatal(err)
	}
	if err := parsed.Verify("hunter2"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := parsed.Verify("hunter3"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("err = %v", err)
	}

	other, _ := Derive("hunter2", 1000)
	if string(other.Salt) == string(s.Salt) {
		t.Fatal("salts should be random")
	}
}
