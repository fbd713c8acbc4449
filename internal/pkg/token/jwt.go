// Package token implements the bearer token codec on HS256 JWTs.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pingado/messaging-system/internal/core/ports"
)

// claims is the wire shape of both access and refresh tokens. Refresh tokens
// omit the email claim.
type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies tokens with a symmetric secret. Audience and
// issuer are fixed at construction and enforced on verification.
type JWTCodec struct {
	secret   []byte
	audience string
	issuer   string
}

var _ ports.TokenCodec = (*JWTCodec)(nil)

func NewJWTCodec(secret, audience, issuer string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), audience: audience, issuer: issuer}
}

func (c *JWTCodec) Sign(sub int64, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(sub, 10),
			Audience:  jwt.ClaimStrings{c.audience},
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	})

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Verify(token string) (*ports.TokenPayload, error) {
	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(c.audience),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	sub, err := strconv.ParseInt(cl.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token subject %q: %w", cl.Subject, err)
	}

	payload := &ports.TokenPayload{
		Sub:      sub,
		Email:    cl.Email,
		Audience: c.audience,
		Issuer:   cl.Issuer,
	}
	if cl.IssuedAt != nil {
		payload.IssuedAt = cl.IssuedAt.Time
	}
	if cl.ExpiresAt != nil {
		payload.ExpiresAt = cl.ExpiresAt.Time
	}
	return payload, nil
}
