package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "jacha-aru-api"

// TokenClaims identifies the usuario behind an access token
type TokenClaims struct {
	UsuarioID uint
	Mail      string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies access tokens
type TokenIssuer interface {
	Sign(claims TokenClaims) (string, error)
	Verify(token string) (*TokenClaims, error)
}

type accessClaims struct {
	jwt.RegisteredClaims
	Mail string `json:"mail"`
}

// JWTService issues HS256 tokens with a fixed lifetime
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *JWTService) Sign(claims TokenClaims) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.UsuarioID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Mail: claims.Mail,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify rejects tokens that are expired, not HMAC signed, or not ours.
// Every failure is reported as ErrUnauthorized.
func (s *JWTService) Verify(raw string) (*TokenClaims, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, unauthorized("token expired")
		}
		return nil, unauthorized("invalid token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, unauthorized("invalid token")
	}

	out := &TokenClaims{UsuarioID: uint(id), Mail: claims.Mail}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
