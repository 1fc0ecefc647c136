package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller as carried by the bearer token.
// Controllers read it from the gin context; the user id is never taken
// from a request body.
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

// GenerateJWT signs an HS256 token embedding user id, username and role.
func GenerateJWT(secret string, id Identity, lifetime time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   id.UserID,
		"username": id.Username,
		"role":     id.Role,
		"exp":      time.Now().Add(lifetime).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseJWT validates the signature and expiry and returns the identity.
func ParseJWT(secret, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return Identity{}, errors.New("userId claim missing")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if username == "" || role == "" {
		return Identity{}, fmt.Errorf("incomplete claims")
	}

	return Identity{UserID: uint(userID), Username: username, Role: role}, nil
}
