package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued token stays usable. Tokens are stateless;
// expiry is the only server-side termination.
const TokenValidity = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the user identity embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func GenerateToken(user *User, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	})

	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry and returns the embedded
// claims. Any failure, including malformed input, reports ErrInvalidToken.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
