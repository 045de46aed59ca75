package service

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWTService_IssueParseRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)

	token, err := svc.Issue("u1", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", time.Millisecond)

	token, err := svc.Issue("u1", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := svc.Parse(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	other := NewJWTService("another-secret", 15*time.Minute)

	token, err := svc.Issue("u1", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := other.Parse(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestJWTService_RejectsTamperedPayload(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)

	token, err := svc.Issue("u1", "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three jwt segments")
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Parse(tampered); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestJWTService_RejectsGarbageAndEmpty(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)

	if _, err := svc.Parse(""); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for empty token, got %v", err)
	}
	if _, err := svc.Parse("not.a.jwt"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for garbage token, got %v", err)
	}
}

func TestJWTService_RejectsEmptySecret(t *testing.T) {
	svc := NewJWTService("", 15*time.Minute)

	if _, err := svc.Issue("u1", "user@example.com"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}
