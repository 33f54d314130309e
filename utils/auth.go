package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JwtKey signs and verifies tokens. Loaded from JWT_SECRET in main.
var JwtKey = []byte("dev_jwt_secret")

const (
	userTokenTTL  = 7 * 24 * time.Hour
	adminTokenTTL = 2 * time.Hour
)

// Claims represents the JWT claims. Subject holds the user ID for user tokens
// and the admin email for admin tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// GenerateUserToken issues a 7-day token for a shopper.
func GenerateUserToken(userID string) (string, error) {
	return generateToken(userID, "user", userTokenTTL)
}

// GenerateAdminToken issues a 2-hour token for the back-office.
func GenerateAdminToken(email string) (string, error) {
	return generateToken(email, "admin", adminTokenTTL)
}

func generateToken(subject, role string, ttl time.Duration) (string, error) {
	claims := &Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseToken verifies a token string and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorMalformed)
	}
	return claims, nil
}
