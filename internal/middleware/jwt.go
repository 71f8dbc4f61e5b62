package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"bus_booking/internal/config"
	"bus_booking/internal/models"
)

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// GenerateToken signs a bearer token carrying the user id and role.
func GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and verifies a signed token string.
func ValidateToken(tokenStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return token, nil
}

const callerKey = "caller"

// resolveCaller verifies the bearer token against both its signature and the
// persistent token table, then loads the account it names.
func resolveCaller(db *gorm.DB, tokenString string) (*models.User, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	// The key must still be on record; rotated or revoked keys are dead even
	// while their signature is valid.
	var stored models.AuthToken
	if err := db.Where("key = ? AND user_id = ?", tokenString, uint(userID)).First(&stored).Error; err != nil {
		return nil, errors.New("unknown token")
	}

	var user models.User
	if err := db.First(&user, uint(userID)).Error; err != nil {
		return nil, errors.New("account no longer exists")
	}
	return &user, nil
}

// RequireAuth ensures a valid bearer token is present and stores the caller
// in the context for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		caller, err := resolveCaller(config.DB, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a bearer token is supplied but lets
// anonymous requests through; the policy layer decides what anonymous callers
// may do. A token that is present but bad still aborts with 401.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		caller, err := resolveCaller(config.DB, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// CallerFrom returns the authenticated caller stored by the auth middleware,
// or nil for anonymous requests.
func CallerFrom(c *gin.Context) *models.User {
	v, exists := c.Get(callerKey)
	if !exists {
		return nil
	}
	caller, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return caller
}
