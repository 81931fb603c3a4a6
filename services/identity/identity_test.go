package identity

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateSecureOTPLength(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		otp, err := generateSecureOTP(length)
		if err != nil {
			t.Fatalf("generateSecureOTP(%d): %v", length, err)
		}
		if len(otp) != length {
			t.Fatalf("generateSecureOTP(%d) = %q (len %d)", length, otp, len(otp))
		}
	}
}

func TestGenerateSecureOTPCharset(t *testing.T) {
	const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	otp, err := generateSecureOTP(6)
	if err != nil {
		t.Fatalf("generateSecureOTP: %v", err)
	}
	for _, c := range otp {
		if !strings.ContainsRune(base32Alphabet, c) {
			t.Fatalf("unexpected character %q in OTP %q", c, otp)
		}
	}
}

func TestGenerateSecureOTPVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		otp, err := generateSecureOTP(6)
		if err != nil {
			t.Fatalf("generateSecureOTP: %v", err)
		}
		seen[otp] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected distinct codes across generations")
	}
}

func TestOTPKeyScopesUserAndPhone(t *testing.T) {
	a := otpKey("u1", "+911234567890")
	b := otpKey("u2", "+911234567890")
	c := otpKey("u1", "+919999999999")
	if a == b || a == c {
		t.Fatalf("keys must differ per user and phone: %q %q %q", a, b, c)
	}
}

func TestOTPHashRoundTrip(t *testing.T) {
	otp, err := generateSecureOTP(6)
	if err != nil {
		t.Fatalf("generateSecureOTP: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(otp)) != nil {
		t.Fatal("hash must verify the original code")
	}
	if bcrypt.CompareHashAndPassword(hash, []byte("AAAAAA")) == nil {
		t.Fatal("hash must reject a different code")
	}
}
