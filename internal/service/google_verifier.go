package service

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"
)

// ErrGoogleAuthFailed cubre cualquier fallo de verificacion del ID token de
// Google: firma invalida, audiencia ajena, token vencido o servicio caido.
// Nunca se expone el motivo concreto al cliente.
var ErrGoogleAuthFailed = errors.New("google auth failed")

// GoogleIdentity es la identidad ya verificada contra las claves de Google.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier valida un ID token emitido por Google y extrae la
// identidad. Se define como interfaz para poder stubear en tests.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (GoogleIdentity, error)
}

// GoogleIDTokenVerifier implementa GoogleVerifier contra el endpoint JWKS
// de Google, con el client ID propio como audiencia esperada.
type GoogleIDTokenVerifier struct {
	clientID string
}

func NewGoogleIDTokenVerifier(clientID string) *GoogleIDTokenVerifier {
	return &GoogleIDTokenVerifier{clientID: clientID}
}

func (v *GoogleIDTokenVerifier) Verify(ctx context.Context, rawToken string) (GoogleIdentity, error) {
	if v.clientID == "" || strings.TrimSpace(rawToken) == "" {
		return GoogleIdentity{}, ErrGoogleAuthFailed
	}

	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return GoogleIdentity{}, ErrGoogleAuthFailed
	}

	identity := GoogleIdentity{
		Subject: payload.Subject,
		Email:   claimString(payload.Claims, "email"),
		Name:    claimString(payload.Claims, "name"),
	}
	if identity.Subject == "" || identity.Email == "" {
		return GoogleIdentity{}, ErrGoogleAuthFailed
	}

	// La vinculacion de cuentas por email confia en que Google ya verifico
	// la casilla; un email sin verificar no entra al flujo.
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return GoogleIdentity{}, ErrGoogleAuthFailed
	}

	return identity, nil
}

func claimString(claims map[string]any, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
