package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New(strings.Repeat("ab", 32)) // 32 bytes hex-encoded
	require.NoError(t, err)
	require.True(t, svc.Configured())

	sealed, err := svc.Encrypt([]byte("payroll data"))
	require.NoError(t, err)
	assert.NotEqual(t, []byte("payroll data"), sealed)

	opened, err := svc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("payroll data"), opened)
}

func TestUnconfiguredIsPassThrough(t *testing.T) {
	svc, err := New("")
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	sealed, err := svc.Encrypt([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, []byte("plain"), sealed)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	svc, err := New(strings.Repeat("ab", 32))
	require.NoError(t, err)

	sealed, err := svc.Encrypt([]byte("payroll data"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff

	_, err = svc.Decrypt(sealed)
	assert.Error(t, err)
}

func TestRejectsShortKey(t *testing.T) {
	_, err := New("too-short")
	assert.Error(t, err)
}
