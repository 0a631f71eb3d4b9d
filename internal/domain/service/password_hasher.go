// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"
	"errors"
)

var (
	// ErrMalformedHash is returned by Check when the stored digest is not a valid hash string.
	ErrMalformedHash = errors.New("malformed password hash")

	// ErrPasswordTooLong is returned by Hash when the plaintext exceeds the algorithm's input limit.
	ErrPasswordTooLong = errors.New("password exceeds hashing input limit")
)

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted, self-describing digest from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Check compares a plaintext password with a digest. A mismatch is (false, nil);
	// an error is only returned for a malformed digest or a cancelled context.
	Check(ctx context.Context, password, hash string) (bool, error)
}
