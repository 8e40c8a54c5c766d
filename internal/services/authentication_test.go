package services

import (
	"testing"

	"spigot/internal/models"
)

func TestAuthenticationRoundTrip(t *testing.T) {
	authentication, err := NewAuthentication("test-secret")
	if err != nil {
		t.Fatalf("new authentication: %v", err)
	}

	token, err := authentication.CreateToken(&models.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	user, err := authentication.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %s", user.ID)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %s", user.Username)
	}
}

func TestAuthenticationRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewAuthentication("secret-a")
	verifier, _ := NewAuthentication("secret-b")

	token, err := issuer.CreateToken(&models.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := verifier.Validate(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestAuthenticationRejectsGarbage(t *testing.T) {
	authentication, _ := NewAuthentication("test-secret")

	if _, err := authentication.Validate("not-a-token"); err == nil {
		t.Fatal("expected validation to fail")
	}
}

func TestNewAuthenticationEmptySecret(t *testing.T) {
	if _, err := NewAuthentication(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
