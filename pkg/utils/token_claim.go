package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the subset of JWT claims the handlers care about.
type TokenClaims struct {
	UserID uuid.UUID
	Phone  string
	Role   string
}

// ExtractClaimsFromHeader parses an Authorization header (Bearer <token>)
// and returns the user id and role from the JWT claims.
func ExtractClaimsFromHeader(authHeader string) (TokenClaims, error) {
	var tc TokenClaims

	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return tc, errors.New("missing or invalid Authorization header")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := parseClaims(tokenString)
	if err != nil {
		return tc, err
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return tc, errors.New("invalid token payload")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return tc, errors.New("invalid user id in token")
	}

	tc.UserID = userID
	tc.Phone, _ = claims["phone"].(string)
	tc.Role, _ = claims["user_role"].(string)
	return tc, nil
}

// ExtractUserIDFromHeader is a shortcut for handlers that only need the id.
func ExtractUserIDFromHeader(authHeader string) (uuid.UUID, error) {
	tc, err := ExtractClaimsFromHeader(authHeader)
	if err != nil {
		return uuid.Nil, err
	}
	return tc.UserID, nil
}

// ExtractClaimsFromToken parses a raw token string (no Bearer prefix),
// used by the websocket handshake where the token arrives as a query param.
func ExtractClaimsFromToken(tokenString string) (TokenClaims, error) {
	var tc TokenClaims
	if tokenString == "" {
		return tc, errors.New("missing token")
	}
	return ExtractClaimsFromHeader("Bearer " + tokenString)
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT secret not set")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil })
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
