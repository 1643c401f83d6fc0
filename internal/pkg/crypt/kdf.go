package crypt

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// kdfSalt is fixed so the same passphrase derives the same master key
// across restarts; envelopes written before a restart stay readable.
var kdfSalt = []byte("govault.master.v1")

const kdfIterations = 600_000

// DeriveKey stretches a passphrase into a 32-byte AES-256 master key
// using PBKDF2-SHA256. The derivation is one way; the passphrase is never
// stored.
func DeriveKey(passphrase string) []byte {
	return pbkdf2.Key([]byte(passphrase), kdfSalt, kdfIterations, aesKeyLen, sha256.New)
}
