// Package auth issues and checks the access tokens handed out after a
// successful Telegram login.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the local user id and the Telegram uid it logged in with.
//
// The service only issues tokens to users whose Telegram account is
// already linked. To connect an account for the first time the host
// application mints the token itself: HS256 signed with the server's
// SecretKey, with the local user id in the "uid" claim. "exp" is honored
// when present and "tg" may be left out.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"uid"`
	TelegramUID string `json:"tg,omitempty"`
}

func GenerateToken(userID, telegramUID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:      userID,
		TelegramUID: telegramUID,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken validates tokenString and returns its user id. Expired
// tokens yield common.ErrTokenExpired, every other problem
// common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
