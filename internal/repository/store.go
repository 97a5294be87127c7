package repository

import (
	"context"
	"fmt"
	"strings"
)

// KeyValueStore is the durable, string-keyed backing store the wellness
// state is written through to. Implementations are synchronous and have no
// transactions; a missing key is reported with found=false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// validateKey rejects keys that cannot be mapped onto every backend
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key: %q", key)
	}
	return nil
}
