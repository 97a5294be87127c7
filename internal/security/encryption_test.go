package security

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncryptor(t *testing.T) *Encryptor {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	encryptor, err := NewEncryptor(key)
	require.NoError(t, err)
	return encryptor
}

func TestEncryptor_EncryptDecrypt(t *testing.T) {
	encryptor := newTestEncryptor(t)

	testCases := []struct {
		name      string
		plaintext string
	}{
		{
			name:      "checklist payload",
			plaintext: `[{"id":"1","label":"Morning walk (15 mins)","completed":false,"category":"health","date":"2024-01-15"}]`,
		},
		{
			name:      "empty string",
			plaintext: "",
		},
		{
			name:      "emoji mood entries",
			plaintext: `{"mood":[{"date":"2024-01-15","value":5,"emoji":"😊"}]}`,
		},
		{
			name:      "report analysis text",
			plaintext: "Hemoglobin levels are slightly low (10.5 g/dL). Normal range: 11-14 g/dL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, err := encryptor.Encrypt(tc.plaintext)
			require.NoError(t, err)

			if tc.plaintext == "" {
				assert.Equal(t, "", ciphertext)
				return
			}

			assert.NotEqual(t, tc.plaintext, ciphertext)
			assert.NotEmpty(t, ciphertext)

			decrypted, err := encryptor.Decrypt(ciphertext)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, decrypted)
		})
	}
}

func TestEncryptor_InvalidKey(t *testing.T) {
	testCases := []struct {
		name    string
		keySize int
	}{
		{name: "too short", keySize: 16},
		{name: "too long", keySize: 64},
		{name: "empty", keySize: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key := make([]byte, tc.keySize)
			_, err := NewEncryptor(key)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "encryption key must be 32 bytes")
		})
	}
}

func TestNewEncryptorFromPassphrase(t *testing.T) {
	_, err := NewEncryptorFromPassphrase("")
	assert.Error(t, err)

	a, err := NewEncryptorFromPassphrase("correct horse battery staple")
	require.NoError(t, err)
	b, err := NewEncryptorFromPassphrase("correct horse battery staple")
	require.NoError(t, err)

	ciphertext, err := a.Encrypt("wellness state")
	require.NoError(t, err)

	// Same passphrase derives the same key
	plaintext, err := b.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "wellness state", plaintext)

	other, err := NewEncryptorFromPassphrase("different")
	require.NoError(t, err)
	_, err = other.Decrypt(ciphertext)
	assert.Error(t, err)
}

func TestEncryptor_DifferentCiphertexts(t *testing.T) {
	encryptor := newTestEncryptor(t)

	plaintext := `{"mood":[],"sleep":[],"nutrition":[],"activity":[]}`

	ciphertext1, err := encryptor.Encrypt(plaintext)
	require.NoError(t, err)

	ciphertext2, err := encryptor.Encrypt(plaintext)
	require.NoError(t, err)

	// Random nonce per call
	assert.NotEqual(t, ciphertext1, ciphertext2)

	decrypted1, err := encryptor.Decrypt(ciphertext1)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted1)

	decrypted2, err := encryptor.Decrypt(ciphertext2)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted2)
}

func TestEncryptor_InvalidCiphertext(t *testing.T) {
	encryptor := newTestEncryptor(t)

	testCases := []struct {
		name       string
		ciphertext string
	}{
		{name: "invalid base64", ciphertext: "not-valid-base64!!!"},
		{name: "too short", ciphertext: "YWJj"},
		{name: "corrupted data", ciphertext: "YWJjZGVmZ2hpamtsbW5vcHFyc3R1dnd4eXo="},
		{name: "plain json", ciphertext: `[{"id":"1"}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := encryptor.Decrypt(tc.ciphertext)
			assert.Error(t, err)
		})
	}
}
