package services

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL matches the session lifetime presented to clients:
// expiry is the only invalidation path, there is no revocation list.
const DefaultTokenTTL = 30 * 24 * time.Hour

type TokenService interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(tokenString string) (uuid.UUID, error)
}

type TokenServiceImpl struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenServiceImpl {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenServiceImpl{secret: []byte(secret), ttl: ttl}
}

func (s *TokenServiceImpl) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenServiceImpl) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	idStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.FromString(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
