package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"influpromo/internal/domain"
	"influpromo/internal/repository"
)

// AuthService coordina registro, login local y login federado con Google.
type AuthService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	hasher   PasswordHasher
	jwt      *JWTService
	verifier GoogleVerifier
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, hasher PasswordHasher, jwt *JWTService, verifier GoogleVerifier) *AuthService {
	return &AuthService{
		logger:   logger,
		users:    users,
		hasher:   hasher,
		jwt:      jwt,
		verifier: verifier,
	}
}

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrNameRequired       = errors.New("name required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLength = 6

// AuthResult agrupa el usuario sanitizado y su token de sesion.
type AuthResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Register valida los datos, hashea la contraseña e inserta el usuario.
// El chequeo previo por email es solo el camino rapido: el indice unico de
// la base decide ante dos registros concurrentes con el mismo email.
func (s *AuthService) Register(ctx context.Context, emailAddr, password, name string) (AuthResult, error) {
	emailAddr = normalizeEmail(emailAddr)
	name = strings.TrimSpace(name)

	if !isValidEmail(emailAddr) {
		return AuthResult{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return AuthResult{}, ErrPasswordTooShort
	}
	if name == "" {
		return AuthResult{}, ErrNameRequired
	}

	_, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return AuthResult{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}

	return s.issue(user)
}

// Login autentica por email y contraseña. Usuario inexistente, cuenta solo
// Google y contraseña incorrecta devuelven todos el mismo error generico.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (AuthResult, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !user.HasPassword() {
		return AuthResult{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

// LoginWithGoogle verifica el ID token contra Google y resuelve el usuario:
// por google_id si ya existe, por email vinculando el google_id a la cuenta
// local, o creando una cuenta nueva sin contraseña.
func (s *AuthService) LoginWithGoogle(ctx context.Context, rawToken string) (AuthResult, error) {
	if s.verifier == nil {
		return AuthResult{}, ErrGoogleAuthFailed
	}

	identity, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return AuthResult{}, ErrGoogleAuthFailed
	}

	user, err := s.users.GetByGoogleID(ctx, identity.Subject)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return AuthResult{}, err
	}

	emailAddr := normalizeEmail(identity.Email)
	user, err = s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		// Cuenta local preexistente con el mismo email verificado:
		// se vincula la identidad de Google en lugar de duplicar.
		if err := s.users.LinkGoogleID(ctx, user.ID, identity.Subject); err != nil {
			return AuthResult{}, err
		}
		s.logger.Info("google identity linked to existing account", zap.String("user_id", user.ID))
		user.GoogleID = identity.Subject
		return s.issue(user)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return AuthResult{}, err
	}

	user = domain.User{
		ID:        uuid.NewString(),
		Email:     emailAddr,
		Name:      strings.TrimSpace(identity.Name),
		GoogleID:  identity.Subject,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Otro request gano la carrera; se relee la fila definitiva.
			existing, getErr := s.users.GetByGoogleID(ctx, identity.Subject)
			if getErr != nil {
				return AuthResult{}, err
			}
			return s.issue(existing)
		}
		return AuthResult{}, err
	}

	return s.issue(user)
}

func (s *AuthService) issue(user domain.User) (AuthResult, error) {
	token, err := s.jwt.Issue(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
