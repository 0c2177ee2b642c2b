// Package passwordverifier hashes and verifies account passwords. Hashes
// are stored in the PHC string format
// ($argon2id$v=19$m=...,t=...,p=...$salt$hash) so the parameters used to
// create a hash travel with it.
package passwordverifier

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrPasswordHashWrongFormat is returned when a stored hash string
	// does not match the expected PHC format.
	ErrPasswordHashWrongFormat = errors.New("passwordverifier: hash string has the wrong format")
	// ErrUnsupportedPasswordHash is returned for a hash algorithm other
	// than argon2id.
	ErrUnsupportedPasswordHash = errors.New("passwordverifier: unsupported password hash algorithm")
)

const (
	saltLength  = 16
	hashLength  = 32
	memoryKiB   = 128 * 1024
	iterations  = 3
	parallelism = 8
)

// Verifier hashes new passwords and verifies them against stored hashes.
type Verifier interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// Argon2Verifier hashes passwords with argon2id.
type Argon2Verifier struct{}

// Hash creates a new argon2id PHC hash string for password, with a fresh
// random salt.
func (Argon2Verifier) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("passwordverifier: generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memoryKiB, parallelism, hashLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify reports whether password produces the given PHC hash string.
func (Argon2Verifier) Verify(password, encoded string) (bool, error) {
	algorithm, version, m, t, p, salt, hash, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	if algorithm != "argon2id" {
		return false, ErrUnsupportedPasswordHash
	}
	if version != argon2.Version {
		return false, ErrPasswordHashWrongFormat
	}

	candidate := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(hash)))
	return subtle.ConstantTimeCompare(candidate, hash) == 1, nil
}

func parsePHC(encoded string) (algorithm string, version int, m uint32, t uint32, p uint8, salt, hash []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return "", 0, 0, 0, 0, nil, nil, ErrPasswordHashWrongFormat
	}
	algorithm = parts[1]

	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return "", 0, 0, 0, 0, nil, nil, ErrPasswordHashWrongFormat
	}

	var tt, pp uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &tt, &pp); err != nil {
		return "", 0, 0, 0, 0, nil, nil, ErrPasswordHashWrongFormat
	}
	t = tt
	p = uint8(pp)

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return "", 0, 0, 0, 0, nil, nil, ErrPasswordHashWrongFormat
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return "", 0, 0, 0, 0, nil, nil, ErrPasswordHashWrongFormat
	}
	return algorithm, version, m, t, p, salt, hash, nil
}
