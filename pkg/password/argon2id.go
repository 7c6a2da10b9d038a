package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	algorithm = "argon2id"
	version   = argon2.Version
)

// Params are Argon2id cost factors.
type Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams must not change once hashes have been persisted with them.
var DefaultParams = Params{
	MemoryKiB:   19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher is stateless and safe for concurrent use.
type Hasher struct {
	params Params
}

// NewHasher returns a Hasher using DefaultParams.
func NewHasher() Hasher {
	return Hasher{params: DefaultParams}
}

// Params returns the parameters new hashes are created with.
func (h Hasher) Params() Params {
	return h.params
}

// Hash derives a PHC string from password using a fresh random salt.
func (h Hasher) Hash(password []byte) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}
	return h.HashWithSalt(password, salt)
}

// HashWithSalt derives a PHC string from password and the given salt.
func (h Hasher) HashWithSalt(password, salt []byte) (string, error) {
	if len(password) == 0 {
		return "", ErrEmptyPassword
	}
	if len(salt) < 8 || len(salt) > 64 {
		return "", ErrInvalidSalt
	}

	key := argon2.IDKey(password, salt, h.params.Iterations, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm,
		version,
		h.params.MemoryKiB,
		h.params.Iterations,
		h.params.Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// Verify returns nil when password matches encoded, ErrMismatch when it does
// not, and ErrMalformedHash when encoded cannot be parsed or asks for costs
// far above the hasher's own.
func (h Hasher) Verify(password []byte, encoded string) error {
	params, salt, expected, err := decode(encoded)
	if err != nil {
		return errors.Join(ErrMalformedHash, err)
	}
	if !withinBounds(params, h.params) {
		return errors.Join(ErrMalformedHash, errors.New("cost parameters out of bounds"))
	}

	key := argon2.IDKey(password, salt, params.Iterations, params.MemoryKiB, params.Parallelism, params.KeyLength)
	if subtle.ConstantTimeCompare(key, expected) != 1 {
		return ErrMismatch
	}
	return nil
}

// withinBounds accepts older, cheaper hashes but refuses stored strings
// that would make a single verification pathologically expensive.
func withinBounds(got, limits Params) bool {
	switch {
	case got.MemoryKiB > limits.MemoryKiB*2:
		return false
	case got.Iterations > limits.Iterations*2:
		return false
	case got.Parallelism > limits.Parallelism*4:
		return false
	case got.SaltLength < 8 || got.SaltLength > 64:
		return false
	case got.KeyLength < 16 || got.KeyLength > 128:
		return false
	}
	return true
}

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return Params{}, nil, nil, errors.New("unexpected number of segments")
	}
	if parts[1] != algorithm {
		return Params{}, nil, nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var v int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &v); err != nil {
		return Params{}, nil, nil, fmt.Errorf("parse version: %w", err)
	}
	if v != version {
		return Params{}, nil, nil, fmt.Errorf("unsupported version %d", v)
	}

	var mem, iter, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return Params{}, nil, nil, fmt.Errorf("parse parameters: %w", err)
	}
	if mem == 0 || iter == 0 || par == 0 || par > 255 {
		return Params{}, nil, nil, errors.New("zero or oversized parameter")
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("decode salt: %w", err)
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("decode digest: %w", err)
	}

	return Params{
		MemoryKiB:   mem,
		Iterations:  iter,
		Parallelism: uint8(par),
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(key)),
	}, salt, key, nil
}
