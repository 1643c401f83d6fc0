package crypt

import "errors"

var (
	// ErrPlaintextEmpty indicates an empty plaintext input.
	ErrPlaintextEmpty = errors.New("crypt: plaintext is empty")
	// ErrInvalidKeyLength indicates the key length is invalid.
	ErrInvalidKeyLength = errors.New("crypt: invalid key length")
	// ErrDecryptFailed indicates a malformed envelope or an authentication
	// failure. The cause is deliberately not distinguished.
	ErrDecryptFailed = errors.New("crypt: decrypt failed")
)

// Encryptor seals and opens secret strings.
type Encryptor interface {
	// EncryptString seals plaintext and returns a printable envelope.
	// Each call uses a fresh nonce, so equal plaintexts produce
	// different envelopes.
	EncryptString(plaintext string) (string, error)

	// DecryptString opens an envelope produced by EncryptString.
	DecryptString(envelope string) (string, error)
}
