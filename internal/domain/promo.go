package domain

import "time"

// Influencer es la persona que difunde un codigo.
type Influencer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// Brand es la marca que respalda el descuento.
type Brand struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// Promo es un codigo promocional enviado por un usuario. Solo las promos
// con Verified=true aparecen en el listado publico.
type Promo struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	DiscountValue string    `json:"discount_value"`
	InfluencerID  string    `json:"influencer_id"`
	BrandID       string    `json:"brand_id"`
	UserID        string    `json:"user_id,omitempty"`
	ExpiryDate    time.Time `json:"expiry_date"`
	Verified      bool      `json:"verified"`
	IsExclusive   bool      `json:"is_exclusive"`
	CreatedAt     time.Time `json:"created_at"`
}

// PromoCard es la vista de listado: la promo junto con los nombres e
// imagenes de influencer y marca ya resueltos por el join.
type PromoCard struct {
	Promo
	InfluencerName  string `json:"influencer_name"`
	InfluencerImage string `json:"influencer_image,omitempty"`
	BrandName       string `json:"brand_name"`
	BrandLogo       string `json:"brand_logo,omitempty"`
}

// PromoFilters son los criterios opcionales del listado publico.
type PromoFilters struct {
	Influencer string
	Brand      string
	Search     string
}
