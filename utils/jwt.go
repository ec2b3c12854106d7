package utils

import (
	"errors"
	"time"

	"jenga/config"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued access token stays valid.
const TokenTTL = time.Hour

func secretKey() ([]byte, error) {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		return nil, MisconfigurationError("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

// GenerateToken creates a signed JWT with the given subject (user ID), role
// and display name. Fails with a misconfiguration error if no secret is set.
func GenerateToken(subject, role, name string) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"name": name,
		"iat":  now.Unix(),
		"exp":  now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractIDFromToken extracts the subject (user ID) from a valid token.
func ExtractIDFromToken(tokenString string) (string, error) {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("invalid token payload")
	}
	return sub, nil
}
