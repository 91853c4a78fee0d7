package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adudhe01/runroom/internal/domain"
)

const (
	// sessionTTL matches the frontend's weekly re-login cadence.
	sessionTTL = 7 * 24 * time.Hour

	// stateTTL bounds the OAuth round trip. A state token older than this
	// is rejected at the callback.
	stateTTL = 10 * time.Minute

	userIDClaim = "userId"
)

// TokenManager issues and verifies the HS256 tokens used both for API
// sessions and for the OAuth state parameter.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue creates a session token for the given user.
func (m *TokenManager) Issue(userID string) (string, error) {
	return m.sign(userID, sessionTTL)
}

// IssueState creates a short-lived token carried through the OAuth redirect
// as the state parameter, binding the callback to the initiating user.
func (m *TokenManager) IssueState(userID string) (string, error) {
	return m.sign(userID, stateTTL)
}

func (m *TokenManager) sign(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIDClaim: userID,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the user ID it was issued for. Any
// parse, signature, or expiry failure maps to domain.ErrUnauthorized.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", domain.ErrUnauthorized
	}

	return userID, nil
}
