package service

import (
	"context"
	"errors"
	"testing"
)

func TestGoogleIDTokenVerifier_FailsFastWithoutConfig(t *testing.T) {
	verifier := NewGoogleIDTokenVerifier("")

	if _, err := verifier.Verify(context.Background(), "some-token"); !errors.Is(err, ErrGoogleAuthFailed) {
		t.Fatalf("expected ErrGoogleAuthFailed without client id, got %v", err)
	}
}

func TestGoogleIDTokenVerifier_RejectsEmptyToken(t *testing.T) {
	verifier := NewGoogleIDTokenVerifier("client-id")

	if _, err := verifier.Verify(context.Background(), "   "); !errors.Is(err, ErrGoogleAuthFailed) {
		t.Fatalf("expected ErrGoogleAuthFailed for empty token, got %v", err)
	}
}
