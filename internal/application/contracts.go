package application

import "context"

// Hasher produces a one-way hash of a plaintext password.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

// HashComparer checks a plaintext password against a stored hash.
type HashComparer interface {
	Compare(plaintext, hash string) bool
}

// Encrypter encodes an opaque subject (a user id) into a signed,
// time-limited bearer token.
type Encrypter interface {
	Encrypt(subject string) (string, error)
}

// Decrypter decodes a bearer token back to its subject, failing on an
// invalid or expired signature.
type Decrypter interface {
	Decrypt(token string) (string, error)
}

// FederatedClaims is the verified identity returned by a provider's
// token validator.
type FederatedClaims struct {
	ProviderUserID string
	Email          string
	Name           string
	PictureURL     string
	EmailVerified  bool
}

// FederatedVerifier validates a third-party identity token and returns
// trusted claims, or fails.
type FederatedVerifier interface {
	Verify(ctx context.Context, identityToken string) (FederatedClaims, error)
}
