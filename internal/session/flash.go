// Package session signs the short-lived flash messages carried between a
// redirect and the page it lands on.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	flashIssuer     = "resume-builder"
	defaultFlashTTL = 5 * time.Minute
)

// FlashClaims 表示 flash 令牌中的业务字段。
type FlashClaims struct {
	Messages []string `json:"msgs"`
	jwt.RegisteredClaims
}

// FlashSigner 使用 HS256 签发和校验 flash 令牌。
type FlashSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewFlashSigner builds a signer from the configured session secret.
func NewFlashSigner(secret string, ttl time.Duration) (*FlashSigner, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	if ttl <= 0 {
		ttl = defaultFlashTTL
	}
	return &FlashSigner{secret: []byte(secret), ttl: ttl}, nil
}

// TTL 暴露令牌有效期，用作 cookie 的 Max-Age。
func (s *FlashSigner) TTL() time.Duration {
	return s.ttl
}

// Sign encodes messages into a compact token.
func (s *FlashSigner) Sign(messages []string) (string, error) {
	now := time.Now()
	claims := FlashClaims{
		Messages: messages,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    flashIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign flash: %w", err)
	}
	return signed, nil
}

// Verify 解析并验证 flash 令牌，返回其中的消息。
func (s *FlashSigner) Verify(tokenString string) ([]string, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &FlashClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithIssuer(flashIssuer))
	if err != nil {
		return nil, fmt.Errorf("parse flash: %w", err)
	}

	claims, ok := token.Claims.(*FlashClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid flash claims")
	}
	return claims.Messages, nil
}
