package util

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ParseSubject extracts the sub claim from an HS256 token. The token is
// expected to be issued by the upstream identity provider; this service
// never issues tokens itself.
func ParseSubject(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
