package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"influpromo/internal/domain"
)

// ErrDuplicate indica que un insert choco con un indice unico. El indice
// de la base es la fuente de verdad ante registros concurrentes.
var ErrDuplicate = errors.New("duplicate row")

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (domain.User, error)
	LinkGoogleID(ctx context.Context, id, googleID string) error
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, name, google_id, is_premium, created_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, name, google_id, is_premium, created_at)
		VALUES ($1, lower($2), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.GoogleID,
		user.IsPremium,
		user.CreatedAt,
	)
	return translateUniqueViolation(err)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) GetByGoogleID(ctx context.Context, googleID string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, googleID))
}

func (r *PgUserRepository) LinkGoogleID(ctx context.Context, id, googleID string) error {
	const query = `UPDATE users SET google_id = $2 WHERE id = $1 AND google_id IS NULL`
	tag, err := r.pool.Exec(ctx, query, id, googleID)
	if err != nil {
		return translateUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var (
		u            domain.User
		passwordHash *string
		name         *string
		googleID     *string
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&passwordHash,
		&name,
		&googleID,
		&u.IsPremium,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	if name != nil {
		u.Name = *name
	}
	if googleID != nil {
		u.GoogleID = *googleID
	}
	return u, nil
}

// translateUniqueViolation convierte el codigo 23505 de Postgres en ErrDuplicate.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
