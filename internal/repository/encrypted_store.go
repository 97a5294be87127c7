package repository

import (
	"context"
	"fmt"

	"github.com/vcscsvcscs/wellness-companion/internal/security"
)

// EncryptedStore seals values before handing them to the wrapped store.
// Values that fail to decrypt are reported as read errors.
type EncryptedStore struct {
	inner     KeyValueStore
	encryptor *security.Encryptor
}

// NewEncryptedStore wraps inner with encryptor
func NewEncryptedStore(inner KeyValueStore, encryptor *security.Encryptor) *EncryptedStore {
	return &EncryptedStore{
		inner:     inner,
		encryptor: encryptor,
	}
}

// Get reads and decrypts the value for key
func (s *EncryptedStore) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, found, err := s.inner.Get(ctx, key)
	if err != nil || !found {
		return "", found, err
	}

	value, err := s.encryptor.Decrypt(sealed)
	if err != nil {
		return "", false, fmt.Errorf("failed to decrypt key %s: %w", key, err)
	}

	return value, true, nil
}

// Set encrypts value and writes it under key
func (s *EncryptedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.encryptor.Encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt key %s: %w", key, err)
	}

	return s.inner.Set(ctx, key, sealed)
}

// Delete removes key from the wrapped store
func (s *EncryptedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
