package crypt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	t.Parallel()

	k1 := DeriveKey("correct horse battery staple")
	k2 := DeriveKey("correct horse battery staple")
	k3 := DeriveKey("another passphrase")

	assert.Len(t, k1, 32)
	assert.Equal(t, k1, k2, "derivation must be deterministic")
	assert.NotEqual(t, k1, k3)
}

func TestNewAESGCM(t *testing.T) {
	t.Parallel()

	_, err := NewAESGCM([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	enc, err := NewAESGCM(DeriveKey("pass"))
	require.NoError(t, err)
	assert.NotNil(t, enc)
}

func TestAESGCMRoundTrip(t *testing.T) {
	t.Parallel()

	enc, err := NewAESGCM(DeriveKey("pass"))
	require.NoError(t, err)

	envelope, err := enc.EncryptString("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)

	nonceHex, sealedHex, found := strings.Cut(envelope, ":")
	require.True(t, found, "envelope must be nonce:ciphertext")
	assert.Len(t, nonceHex, 24)
	assert.NotEmpty(t, sealedHex)

	plain, err := enc.DecryptString(envelope)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", plain)
}

func TestAESGCMNonceFreshness(t *testing.T) {
	t.Parallel()

	enc, err := NewAESGCM(DeriveKey("pass"))
	require.NoError(t, err)

	e1, err := enc.EncryptString("same plaintext")
	require.NoError(t, err)

	e2, err := enc.EncryptString("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, e1, e2, "fresh nonce per encryption")

	p1, err := enc.DecryptString(e1)
	require.NoError(t, err)
	p2, err := enc.DecryptString(e2)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestAESGCMEncryptEmpty(t *testing.T) {
	t.Parallel()

	enc, err := NewAESGCM(DeriveKey("pass"))
	require.NoError(t, err)

	_, err = enc.EncryptString("")
	assert.ErrorIs(t, err, ErrPlaintextEmpty)
}

func TestAESGCMDecryptFailures(t *testing.T) {
	t.Parallel()

	enc, err := NewAESGCM(DeriveKey("pass"))
	require.NoError(t, err)

	envelope, err := enc.EncryptString("secret")
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()

		other, err := NewAESGCM(DeriveKey("different pass"))
		require.NoError(t, err)

		_, err = other.DecryptString(envelope)
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("missing delimiter", func(t *testing.T) {
		t.Parallel()

		_, err := enc.DecryptString("deadbeef")
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("non hex nonce", func(t *testing.T) {
		t.Parallel()

		_, err := enc.DecryptString("zz:deadbeef")
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		t.Parallel()

		nonceHex, sealedHex, _ := strings.Cut(envelope, ":")
		flipped := "00"
		if strings.HasPrefix(sealedHex, "00") {
			flipped = "11"
		}

		_, err := enc.DecryptString(nonceHex + ":" + flipped + sealedHex[2:])
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})

	t.Run("empty envelope", func(t *testing.T) {
		t.Parallel()

		_, err := enc.DecryptString("")
		assert.ErrorIs(t, err, ErrDecryptFailed)
	})
}
