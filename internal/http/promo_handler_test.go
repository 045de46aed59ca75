package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"influpromo/internal/domain"
	"influpromo/internal/service"
)

type mockPromoRepo struct {
	cards       []domain.PromoCard
	created     []domain.Promo
	influencers []string
	brands      []string
	lastFilters domain.PromoFilters
	err         error
}

func (m *mockPromoRepo) List(_ context.Context, filters domain.PromoFilters) ([]domain.PromoCard, error) {
	m.lastFilters = filters
	return m.cards, m.err
}

func (m *mockPromoRepo) ListExclusive(_ context.Context) ([]domain.PromoCard, error) {
	return m.cards, m.err
}

func (m *mockPromoRepo) ListByUser(_ context.Context, userID string) ([]domain.PromoCard, error) {
	byUser := []domain.PromoCard{}
	for _, card := range m.cards {
		if card.UserID == userID {
			byUser = append(byUser, card)
		}
	}
	return byUser, m.err
}

func (m *mockPromoRepo) Create(_ context.Context, promo domain.Promo, influencerName, brandName string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.created = append(m.created, promo)
	m.influencers = append(m.influencers, influencerName)
	m.brands = append(m.brands, brandName)
	return promo.ID, nil
}

func (m *mockPromoRepo) FilterNames(_ context.Context) ([]string, []string, error) {
	return m.influencers, m.brands, m.err
}

func setupPromoRouter(promos *mockPromoRepo) (*gin.Engine, *service.JWTService) {
	gin.SetMode(gin.TestMode)
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)
	h := NewPromoHandler(zap.NewNop(), promos)

	r := gin.New()
	r.GET("/promos", h.List)
	r.GET("/promos/filters", h.Filters)
	r.GET("/promos/exclusives", JWTAuthMiddleware(jwtSvc), h.ListExclusives)
	r.POST("/promos", JWTAuthMiddleware(jwtSvc), h.Create)
	return r, jwtSvc
}

func TestPromoHandler_ListPassesFilters(t *testing.T) {
	repo := &mockPromoRepo{cards: []domain.PromoCard{{
		Promo:          domain.Promo{ID: "p1", Code: "SAVE10"},
		InfluencerName: "Ann",
		BrandName:      "Acme",
	}}}
	r, _ := setupPromoRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/promos?influencer=Ann&brand=Acme&search=save", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.lastFilters.Influencer != "Ann" || repo.lastFilters.Brand != "Acme" || repo.lastFilters.Search != "save" {
		t.Fatalf("filters not forwarded: %+v", repo.lastFilters)
	}

	var cards []domain.PromoCard
	if err := json.Unmarshal(rec.Body.Bytes(), &cards); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cards) != 1 || cards[0].Code != "SAVE10" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
}

func TestPromoHandler_CreateRequiresAuth(t *testing.T) {
	repo := &mockPromoRepo{}
	r, _ := setupPromoRouter(repo)

	rec := performRequest(r, http.MethodPost, "/promos", map[string]string{
		"code":            "SAVE10",
		"description":     "10% off",
		"discount_value":  "10%",
		"expiry_date":     "2031-01-01",
		"influencer_name": "Ann",
		"brand_name":      "Acme",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if len(repo.created) != 0 {
		t.Fatalf("promo must not be created without auth")
	}
}

func TestPromoHandler_CreateUnverifiedAndOwned(t *testing.T) {
	repo := &mockPromoRepo{}
	r, jwtSvc := setupPromoRouter(repo)

	token, err := jwtSvc.Issue("u1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	body, _ := json.Marshal(map[string]string{
		"code":            "SAVE10",
		"description":     "10% off",
		"discount_value":  "10%",
		"expiry_date":     "2031-01-01",
		"influencer_name": "Ann",
		"brand_name":      "Acme",
	})
	req := httptest.NewRequest(http.MethodPost, "/promos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created promo")
	}
	created := repo.created[0]
	if created.Verified {
		t.Fatalf("new promos must start unverified")
	}
	if created.UserID != "u1" {
		t.Fatalf("promo must belong to the authenticated user, got %q", created.UserID)
	}
	if repo.influencers[0] != "Ann" || repo.brands[0] != "Acme" {
		t.Fatalf("names not forwarded: %v %v", repo.influencers, repo.brands)
	}
}

func TestPromoHandler_CreateRejectsBadDate(t *testing.T) {
	repo := &mockPromoRepo{}
	r, jwtSvc := setupPromoRouter(repo)

	token, err := jwtSvc.Issue("u1", "a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	body, _ := json.Marshal(map[string]string{
		"code":            "SAVE10",
		"description":     "10% off",
		"discount_value":  "10%",
		"expiry_date":     "01/01/2031",
		"influencer_name": "Ann",
		"brand_name":      "Acme",
	})
	req := httptest.NewRequest(http.MethodPost, "/promos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPromoHandler_Filters(t *testing.T) {
	repo := &mockPromoRepo{influencers: []string{"Ann"}, brands: []string{"Acme"}}
	r, _ := setupPromoRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/promos/filters", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Influencers []string `json:"influencers"`
		Brands      []string `json:"brands"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Influencers) != 1 || len(resp.Brands) != 1 {
		t.Fatalf("unexpected filters: %+v", resp)
	}
}
