package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// generateJWT issues a token carrying the user id. The surrounding social
// login exchange lives in an external service; this is only the glue that
// lets the WebSocket upgrade identify its user.
func (h *Handler) generateJWT(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": float64(userID),
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"iss":     "partygo-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// validateAndGetUserID parses a token and returns the user id it carries.
func (h *Handler) validateAndGetUserID(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("missing user_id claim")
	}
	return uint(id), nil
}

// GetToken issues a JWT for a user id.
func (h *Handler) GetToken(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	token, err := h.generateJWT(uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID})
}
