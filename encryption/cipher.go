//go:generate go run go.uber.org/mock/mockgen -source=cipher.go -destination=../mocks/mock_cipher.go -package=mocks
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"direct-chat/errors"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// Stored payloads depend on every value below.
// Changing any of them makes previously written messages unreadable.
const (
	SaltLength = 16
	IVLength   = 12
	KeyLength  = 32
	TagLength  = 16

	ScryptN = 1 << 14
	ScryptR = 8
	ScryptP = 1
)

var encoding = base64.StdEncoding

type ICipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(payload string) (string, error)
}

// MessageCipher encrypts message text with AES-256-GCM under a key derived
// by scrypt from a static passphrase and a random per-message salt.
// Payload layout: base64(salt || iv || ciphertext+tag).
type MessageCipher struct {
	passphrase []byte
	random     io.Reader
}

func NewMessageCipher(passphrase string) (*MessageCipher, error) {
	return newMessageCipher(passphrase, rand.Reader)
}

func newMessageCipher(passphrase string, random io.Reader) (*MessageCipher, error) {
	if passphrase == "" {
		return nil, errors.ErrInvalidPassphrase
	}
	return &MessageCipher{passphrase: []byte(passphrase), random: random}, nil
}

func (c *MessageCipher) Encrypt(plaintext string) (string, error) {
	// 1. Fresh salt and IV for every message
	buf := make([]byte, SaltLength+IVLength)
	if _, err := io.ReadFull(c.random, buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	salt, iv := buf[:SaltLength], buf[SaltLength:]

	// 2. Derive the key and seal
	aead, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	sealed := aead.Seal(buf, iv, []byte(plaintext), nil)

	// 3. salt || iv || ciphertext, text-safe
	return encoding.EncodeToString(sealed), nil
}

func (c *MessageCipher) Decrypt(payload string) (string, error) {
	raw, err := encoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrPayloadFormat, err)
	}
	if len(raw) < SaltLength+IVLength+TagLength {
		return "", fmt.Errorf("%w: %d bytes is too short", errors.ErrPayloadFormat, len(raw))
	}

	salt := raw[:SaltLength]
	iv := raw[SaltLength : SaltLength+IVLength]
	ciphertext := raw[SaltLength+IVLength:]

	aead, err := c.aead(salt)
	if err != nil {
		return "", err
	}
	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", errors.ErrPayloadIntegrity
	}
	return string(plaintext), nil
}

func (c *MessageCipher) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(c.passphrase, salt, ScryptN, ScryptR, ScryptP, KeyLength)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, IVLength)
}
