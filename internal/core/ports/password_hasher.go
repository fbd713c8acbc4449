package ports

// PasswordHasher is a one-way hash + compare primitive. Plaintext passwords
// are never persisted; they are discarded after hashing or comparison.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns a non-nil error when the password does not match the hash.
	Compare(hash, password string) error
}
