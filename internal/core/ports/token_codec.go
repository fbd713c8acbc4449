package ports

import "time"

// TokenPayload is the decoded claim set of a verified token. It is only
// trusted after the subject has been resolved to an existing, active user.
type TokenPayload struct {
	Sub       int64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Audience  string
	Issuer    string
}

// TokenCodec signs and verifies bearer tokens with a symmetric secret,
// audience, and issuer fixed at construction.
type TokenCodec interface {
	// Sign issues a token for the given subject expiring after ttl.
	// An empty email omits the email claim (refresh tokens carry sub only).
	Sign(sub int64, email string, ttl time.Duration) (string, error)
	// Verify checks signature, expiry, audience, and issuer, and returns the
	// decoded payload.
	Verify(token string) (*TokenPayload, error)
}
