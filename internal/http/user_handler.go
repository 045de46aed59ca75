package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"influpromo/internal/repository"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger *zap.Logger
	users  repository.UserRepository
	promos repository.PromoRepository
}

func NewUserHandler(logger *zap.Logger, users repository.UserRepository, promos repository.PromoRepository) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
		promos: promos,
	}
}

// Profile maneja GET /users/profile. El middleware solo aporta los claims;
// la fila completa (is_premium, name) se relee aca.
func (h *UserHandler) Profile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// MyPromos maneja GET /users/my-promos.
func (h *UserHandler) MyPromos(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	promos, err := h.promos.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list my promos failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list promos"})
		return
	}

	c.JSON(http.StatusOK, promos)
}
