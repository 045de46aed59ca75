package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"influpromo/internal/domain"
	"influpromo/internal/repository"
)

// PromoHandler mantiene dependencias para endpoints de codigos promocionales.
type PromoHandler struct {
	logger *zap.Logger
	promos repository.PromoRepository
}

func NewPromoHandler(logger *zap.Logger, promos repository.PromoRepository) *PromoHandler {
	return &PromoHandler{
		logger: logger,
		promos: promos,
	}
}

// List maneja GET /promos con filtros opcionales por query string.
func (h *PromoHandler) List(c *gin.Context) {
	filters := domain.PromoFilters{
		Influencer: c.Query("influencer"),
		Brand:      c.Query("brand"),
		Search:     c.Query("search"),
	}

	promos, err := h.promos.List(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("list promos failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list promos"})
		return
	}

	c.JSON(http.StatusOK, promos)
}

// ListExclusives maneja GET /promos/exclusives.
func (h *PromoHandler) ListExclusives(c *gin.Context) {
	promos, err := h.promos.ListExclusive(c.Request.Context())
	if err != nil {
		h.logger.Error("list exclusive promos failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list promos"})
		return
	}

	c.JSON(http.StatusOK, promos)
}

// Create maneja POST /promos. La promo entra sin verificar y no aparece en
// el listado publico hasta su revision.
func (h *PromoHandler) Create(c *gin.Context) {
	var req struct {
		Code           string `json:"code" binding:"required"`
		Description    string `json:"description" binding:"required"`
		DiscountValue  string `json:"discount_value" binding:"required"`
		ExpiryDate     string `json:"expiry_date" binding:"required"`
		InfluencerName string `json:"influencer_name" binding:"required"`
		BrandName      string `json:"brand_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create promo request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiry_date"})
		return
	}

	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	promo := domain.Promo{
		ID:            uuid.NewString(),
		Code:          req.Code,
		Description:   req.Description,
		DiscountValue: req.DiscountValue,
		UserID:        claims.UserID,
		ExpiryDate:    expiry,
		CreatedAt:     time.Now().UTC(),
	}

	promoID, err := h.promos.Create(c.Request.Context(), promo, req.InfluencerName, req.BrandName)
	if err != nil {
		h.logger.Error("create promo failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create promo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"promo_id": promoID})
}

// Filters maneja GET /promos/filters.
func (h *PromoHandler) Filters(c *gin.Context) {
	influencers, brands, err := h.promos.FilterNames(c.Request.Context())
	if err != nil {
		h.logger.Error("list promo filters failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list filters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"influencers": influencers,
		"brands":      brands,
	})
}
