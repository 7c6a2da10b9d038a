package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

type keyPair struct {
	sign    []byte
	encrypt cipher.AEAD
}

func deriveKeys(secret string) (keyPair, error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("newsroom cookie keys"))

	signKey := make([]byte, 32)
	encKey := make([]byte, 32)
	if _, err := io.ReadFull(r, signKey); err != nil {
		return keyPair{}, err
	}
	if _, err := io.ReadFull(r, encKey); err != nil {
		return keyPair{}, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return keyPair{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return keyPair{}, err
	}
	return keyPair{sign: signKey, encrypt: aead}, nil
}

// mac binds the signature to the cookie name so a value cannot be replayed
// under a different cookie.
func mac(key []byte, name, value string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}

func (m *Manager) sign(name, value string) string {
	b64 := base64.RawURLEncoding
	return b64.EncodeToString([]byte(value)) + "." + b64.EncodeToString(mac(m.keys[0].sign, name, value))
}

func (m *Manager) verify(name, signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}

	b64 := base64.RawURLEncoding
	value, err := b64.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := b64.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		if hmac.Equal(sig, mac(k.sign, name, string(value))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

func (m *Manager) encrypt(name, value string) (string, error) {
	aead := m.keys[0].encrypt
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (m *Manager) decrypt(name, encoded string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		ns := k.encrypt.NonceSize()
		if len(data) < ns {
			return "", ErrInvalidFormat
		}
		plain, err := k.encrypt.Open(nil, data[:ns], data[ns:], []byte(name))
		if err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}
