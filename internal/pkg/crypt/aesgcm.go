package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Envelope format (string):
//
//	hex(nonce) + ":" + hex(ciphertext+tag)
const envelopeDelimiter = ":"

const (
	gcmNonceSize = 12
	aesKeyLen    = 32
)

// AESGCM is an Encryptor backed by AES-256-GCM with a static master key.
type AESGCM struct {
	key []byte
}

// NewAESGCM constructs an AES-256-GCM encryptor from a 32-byte master key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != aesKeyLen {
		return nil, fmt.Errorf("crypt: key length %d (want %d for AES-256): %w", len(key), aesKeyLen, ErrInvalidKeyLength)
	}

	// Defensive copy so callers can't mutate the key material.
	k := make([]byte, aesKeyLen)
	copy(k, key)

	return &AESGCM{key: k}, nil
}

// EncryptString seals plaintext under the master key with a fresh nonce.
func (e *AESGCM) EncryptString(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrPlaintextEmpty
	}

	gcm, err := e.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcmNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypt: nonce generation failed: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	return hex.EncodeToString(nonce) + envelopeDelimiter + hex.EncodeToString(sealed), nil
}

// DecryptString opens an envelope. Any malformed envelope, wrong key, or
// tampered ciphertext yields ErrDecryptFailed.
func (e *AESGCM) DecryptString(envelope string) (string, error) {
	nonceHex, sealedHex, found := strings.Cut(envelope, envelopeDelimiter)
	if !found {
		return "", ErrDecryptFailed
	}

	nonce, err := hex.DecodeString(nonceHex)
	if err != nil || len(nonce) != gcmNonceSize {
		return "", ErrDecryptFailed
	}

	sealed, err := hex.DecodeString(sealedHex)
	if err != nil || len(sealed) == 0 {
		return "", ErrDecryptFailed
	}

	gcm, err := e.aead()
	if err != nil {
		return "", err
	}

	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		// Do not leak whether it was a wrong key or a tampered envelope.
		return "", ErrDecryptFailed
	}

	return string(plain), nil
}

func (e *AESGCM) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, fmt.Errorf("crypt: aes init failed: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypt: gcm init failed: %w", err)
	}

	return gcm, nil
}
