// Package authn hashes and verifies user passwords using Argon2id, and
// exposes the PasswordVerifier predicate the session login handler uses to
// check submitted credentials against a stored hash.
package authn

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 8

// MaxPasswordLength bounds the plaintext password length accepted for
// hashing, guarding against unbounded memory use in the Argon2 KDF.
const MaxPasswordLength = 256

// ErrPasswordTooShort is returned when a password is below MinPasswordLength.
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

// ErrPasswordTooLong is returned when a password exceeds MaxPasswordLength.
var ErrPasswordTooLong = errors.New("password must be at most 256 characters")

// ErrMalformedHash is returned when a stored hash does not match the
// expected PHC string format produced by Hash.
var ErrMalformedHash = errors.New("malformed password hash")

// ErrIncompatibleVersion is returned when a stored hash was produced by a
// different Argon2 version than this package verifies against.
var ErrIncompatibleVersion = errors.New("incompatible argon2 version")

// Config holds the Argon2id cost parameters. The zero value is not usable;
// callers should start from DefaultConfig.
type Config struct {
	MemoryKiB   uint32 // memory cost, in KiB
	Iterations  uint32 // time cost
	Parallelism uint8  // degree of parallelism
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultConfig mirrors the Argon2id parameters recommended by the Go
// standard library docs for interactive login (RFC 9106 "second
// recommended option"): 64 MiB memory, 1 pass, 4 threads.
var DefaultConfig = Config{
	MemoryKiB:   64 * 1024,
	Iterations:  1,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher hashes and verifies passwords with a fixed Config.
type Hasher struct {
	cfg Config
}

// NewHasher builds a Hasher from cfg.
func NewHasher(cfg Config) *Hasher {
	return &Hasher{cfg: cfg}
}

// ValidatePassword checks a plaintext password's length is within bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Hash derives an Argon2id hash of password and encodes it as a PHC
// string: $argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt>$<key>
func (h *Hasher) Hash(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.cfg.Iterations, h.cfg.MemoryKiB, h.cfg.Parallelism, h.cfg.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.cfg.MemoryKiB, h.cfg.Iterations, h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether password matches the Argon2id PHC-encoded hash.
// It parses the cost parameters from the hash itself, so it verifies
// correctly even against hashes produced under a different Config than h.
func Verify(hash, password string) bool {
	cfg, salt, key, err := decode(hash)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(password), salt, cfg.Iterations, cfg.MemoryKiB, cfg.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

// NeedsRehash reports whether hash was produced under cost parameters
// weaker than cfg, meaning it should be regenerated on next successful
// login.
func NeedsRehash(hash string, cfg Config) bool {
	parsed, _, _, err := decode(hash)
	if err != nil {
		return true
	}
	return parsed.MemoryKiB < cfg.MemoryKiB || parsed.Iterations < cfg.Iterations || parsed.Parallelism < cfg.Parallelism
}

func decode(hash string) (Config, []byte, []byte, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Config{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Config{}, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return Config{}, nil, nil, ErrIncompatibleVersion
	}

	var cfg Config
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &cfg.MemoryKiB, &cfg.Iterations, &cfg.Parallelism); err != nil {
		return Config{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Config{}, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Config{}, nil, nil, ErrMalformedHash
	}
	cfg.SaltLength = uint32(len(salt))
	cfg.KeyLength = uint32(len(key))

	return cfg, salt, key, nil
}

// Verifier is the predicate the login handler uses to check a submitted
// password against a stored hash, decoupling dispatch from this package's
// concrete hash format.
type Verifier func(hash, candidate string) bool

// DefaultVerifier is the Verifier backed by this package's Argon2id Verify.
var DefaultVerifier Verifier = Verify
