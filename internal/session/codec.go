package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/spec-kit/hr-console/internal/domain"
)

const nonceSize = 24

// ErrCorrupt is returned for payloads that cannot be decrypted or decoded.
var ErrCorrupt = errors.New("session payload corrupt")

// Codec seals sessions with NaCl secretbox under a key derived from the configured secret.
type Codec struct {
	key [32]byte
}

// NewCodec derives the sealing key from secret with HKDF-SHA256.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	c := &Codec{}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("hr-console session v1"))
	if _, err := io.ReadFull(kdf, c.key[:]); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return c, nil
}

// Encode serializes and seals a session into a URL-safe string.
func (c *Codec) Encode(s domain.Session) (string, error) {
	plain, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("session nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], plain, &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode opens a sealed session. Every failure is reported as ErrCorrupt.
func (c *Codec) Decode(value string) (domain.Session, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return domain.Session{}, ErrCorrupt
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return domain.Session{}, ErrCorrupt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return domain.Session{}, ErrCorrupt
	}

	var s domain.Session
	if err := json.Unmarshal(plain, &s); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return s, nil
}
