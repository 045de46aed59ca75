package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"influpromo/internal/domain"
)

// PromoRepository define el contrato de persistencia para codigos promocionales.
type PromoRepository interface {
	List(ctx context.Context, filters domain.PromoFilters) ([]domain.PromoCard, error)
	ListExclusive(ctx context.Context) ([]domain.PromoCard, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PromoCard, error)
	Create(ctx context.Context, promo domain.Promo, influencerName, brandName string) (string, error)
	FilterNames(ctx context.Context) (influencers, brands []string, err error)
}

// PgPromoRepository implementa PromoRepository usando pgxpool.
type PgPromoRepository struct {
	pool *pgxpool.Pool
}

func NewPgPromoRepository(pool *pgxpool.Pool) *PgPromoRepository {
	return &PgPromoRepository{pool: pool}
}

const promoCardSelect = `
	SELECT
		p.id, p.code, p.description, p.discount_value,
		p.influencer_id, p.brand_id, COALESCE(p.user_id::text, ''),
		p.expiry_date, p.verified, p.is_exclusive, p.created_at,
		i.name, COALESCE(i.image_url, ''),
		b.name, COALESCE(b.logo_url, '')
	FROM promo_codes p
	JOIN influencers i ON i.id = p.influencer_id
	JOIN brands b ON b.id = p.brand_id
`

func (r *PgPromoRepository) List(ctx context.Context, filters domain.PromoFilters) ([]domain.PromoCard, error) {
	query := promoCardSelect + ` WHERE p.expiry_date >= CURRENT_DATE AND p.verified = TRUE`
	args := []any{}

	if filters.Influencer != "" {
		args = append(args, filters.Influencer)
		query += fmt.Sprintf(" AND i.name = $%d", len(args))
	}
	if filters.Brand != "" {
		args = append(args, filters.Brand)
		query += fmt.Sprintf(" AND b.name = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (p.code ILIKE $%d OR p.description ILIKE $%d OR i.name ILIKE $%d OR b.name ILIKE $%d)", n, n, n, n)
	}

	query += " ORDER BY p.created_at DESC"
	return r.queryCards(ctx, query, args...)
}

func (r *PgPromoRepository) ListExclusive(ctx context.Context) ([]domain.PromoCard, error) {
	query := promoCardSelect + `
		WHERE p.expiry_date >= CURRENT_DATE
		AND p.is_exclusive = TRUE
		AND p.verified = TRUE
		ORDER BY p.created_at DESC
	`
	return r.queryCards(ctx, query)
}

func (r *PgPromoRepository) ListByUser(ctx context.Context, userID string) ([]domain.PromoCard, error) {
	query := promoCardSelect + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC`
	return r.queryCards(ctx, query, userID)
}

// Create inserta la promo junto con el alta de influencer y marca si aun no
// existen, todo dentro de una misma transaccion.
func (r *PgPromoRepository) Create(ctx context.Context, promo domain.Promo, influencerName, brandName string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	influencerID, err := getOrCreateNamed(ctx, tx, "influencers", influencerName)
	if err != nil {
		return "", err
	}
	brandID, err := getOrCreateNamed(ctx, tx, "brands", brandName)
	if err != nil {
		return "", err
	}

	const insert = `
		INSERT INTO promo_codes
			(id, code, description, discount_value, influencer_id, brand_id, user_id, expiry_date, verified, is_exclusive, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9, $10, $11)
	`
	_, err = tx.Exec(ctx, insert,
		promo.ID,
		promo.Code,
		promo.Description,
		promo.DiscountValue,
		influencerID,
		brandID,
		promo.UserID,
		promo.ExpiryDate,
		promo.Verified,
		promo.IsExclusive,
		promo.CreatedAt,
	)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return promo.ID, nil
}

func (r *PgPromoRepository) FilterNames(ctx context.Context) (influencers, brands []string, err error) {
	const influencerQuery = `
		SELECT DISTINCT i.name
		FROM influencers i
		JOIN promo_codes p ON p.influencer_id = i.id
		WHERE p.expiry_date >= CURRENT_DATE
		ORDER BY i.name
	`
	const brandQuery = `
		SELECT DISTINCT b.name
		FROM brands b
		JOIN promo_codes p ON p.brand_id = b.id
		WHERE p.expiry_date >= CURRENT_DATE
		ORDER BY b.name
	`
	influencers, err = r.queryNames(ctx, influencerQuery)
	if err != nil {
		return nil, nil, err
	}
	brands, err = r.queryNames(ctx, brandQuery)
	if err != nil {
		return nil, nil, err
	}
	return influencers, brands, nil
}

func (r *PgPromoRepository) queryCards(ctx context.Context, query string, args ...any) ([]domain.PromoCard, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []domain.PromoCard{}
	for rows.Next() {
		var c domain.PromoCard
		err := rows.Scan(
			&c.ID, &c.Code, &c.Description, &c.DiscountValue,
			&c.InfluencerID, &c.BrandID, &c.UserID,
			&c.ExpiryDate, &c.Verified, &c.IsExclusive, &c.CreatedAt,
			&c.InfluencerName, &c.InfluencerImage,
			&c.BrandName, &c.BrandLogo,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *PgPromoRepository) queryNames(ctx context.Context, query string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// getOrCreateNamed busca por nombre en influencers o brands y crea la fila
// si no existe. ON CONFLICT cubre la carrera entre dos altas simultaneas.
func getOrCreateNamed(ctx context.Context, tx pgx.Tx, table, name string) (string, error) {
	selectQuery := fmt.Sprintf(`SELECT id FROM %s WHERE name = $1`, table)

	var id string
	err := tx.QueryRow(ctx, selectQuery, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return "", err
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, table)
	err = tx.QueryRow(ctx, insertQuery, uuid.NewString(), name).Scan(&id)
	return id, err
}
