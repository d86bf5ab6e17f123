package token

import (
	"testing"
)

func TestGenerateAndValidate(t *testing.T) {
	secret := "test-secret"

	signed, err := GenerateJWT(42, secret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(signed, secret)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, expected 42", claims.UserID)
	}
	if claims.Issuer != "crickside" {
		t.Errorf("issuer = %q, expected crickside", claims.Issuer)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateJWT(42, "right-secret", 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(signed, "wrong-secret"); err == nil {
		t.Error("token validated with the wrong secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	signed, err := GenerateJWT(42, "secret", -1)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(signed, "secret"); err == nil {
		t.Error("expired token validated")
	}
}

func TestGenerateRequiresSecret(t *testing.T) {
	if _, err := GenerateJWT(42, "", 15); err == nil {
		t.Error("token generated with an empty secret")
	}
}
