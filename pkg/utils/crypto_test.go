package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")

	ciphertext, err := Encrypt([]byte("session-token"), key)
	require.NoError(t, err)
	assert.NotEqual(t, "session-token", ciphertext)

	plaintext, err := Decrypt(ciphertext, key)
	require.NoError(t, err)
	assert.Equal(t, "session-token", plaintext)
}

func TestDecrypt_WrongKey(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	other := []byte("fedcba9876543210fedcba9876543210")

	ciphertext, err := Encrypt([]byte("session-token"), key)
	require.NoError(t, err)

	_, err = Decrypt(ciphertext, other)
	assert.Error(t, err)
}

func TestEncrypt_BadKeyLength(t *testing.T) {
	_, err := Encrypt([]byte("data"), []byte("short"))
	assert.Error(t, err)
}

func TestDecrypt_TruncatedData(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	_, err := Decrypt("YWJj", key)
	assert.Error(t, err)
}
