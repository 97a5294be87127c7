package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/wellness-companion/internal/security"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type storeFactory func(t *testing.T) KeyValueStore

func storeFactories() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) KeyValueStore {
			return NewMemoryStore(zaptest.NewLogger(t))
		},
		"file": func(t *testing.T) KeyValueStore {
			store, err := NewFileStore(t.TempDir(), zaptest.NewLogger(t))
			require.NoError(t, err)
			return store
		},
		"encrypted": func(t *testing.T) KeyValueStore {
			encryptor, err := security.NewEncryptorFromPassphrase("test-passphrase")
			require.NoError(t, err)
			return NewEncryptedStore(NewMemoryStore(zap.NewNop()), encryptor)
		},
	}
}

func TestKeyValueStore_Contract(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			_, found, err := store.Get(ctx, "wellness-checklist")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Set(ctx, "wellness-checklist", `[{"id":"1"}]`))

			value, found, err := store.Get(ctx, "wellness-checklist")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[{"id":"1"}]`, value)

			require.NoError(t, store.Set(ctx, "wellness-checklist", `[]`))
			value, _, err = store.Get(ctx, "wellness-checklist")
			require.NoError(t, err)
			assert.Equal(t, `[]`, value)

			require.NoError(t, store.Delete(ctx, "wellness-checklist"))
			_, found, err = store.Get(ctx, "wellness-checklist")
			require.NoError(t, err)
			assert.False(t, found)

			// Deleting twice is fine
			require.NoError(t, store.Delete(ctx, "wellness-checklist"))
		})
	}
}

func TestKeyValueStore_RejectsInvalidKeys(t *testing.T) {
	invalid := []string{"", ".", "..", "a/b", `a\b`, "../escape"}

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)

			for _, key := range invalid {
				_, _, err := store.Get(ctx, key)
				assert.Error(t, err, "get %q", key)
				assert.Error(t, store.Set(ctx, key, "x"), "set %q", key)
				assert.Error(t, store.Delete(ctx, key), "delete %q", key)
			}
		})
	}
}

func TestProperty_StoreRoundTrip(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)

			properties := gopter.NewProperties(nil)

			properties.Property("last written value is read back", prop.ForAll(
				func(key string, values []string) bool {
					ctx := context.Background()

					for _, v := range values {
						if err := store.Set(ctx, key, v); err != nil {
							t.Logf("Failed to set value: %v", err)
							return false
						}
					}

					got, found, err := store.Get(ctx, key)
					if err != nil || !found {
						return false
					}
					return got == values[len(values)-1]
				},
				gen.Identifier(),
				gen.SliceOfN(3, gen.AnyString()).SuchThat(func(v []string) bool { return len(v) > 0 }),
			))

			params := gopter.DefaultTestParameters()
			params.MinSuccessfulTests = 100
			properties.TestingRun(t, params)
		})
	}
}

func TestMemoryStore_KeysAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(zap.NewNop())

	require.NoError(t, store.Set(ctx, "wellness-medicines", "[]"))
	require.NoError(t, store.Set(ctx, "wellness-appointments", "[]"))

	assert.Equal(t, []string{"wellness-appointments", "wellness-medicines"}, store.Keys())

	store.Clear()
	assert.Empty(t, store.Keys())
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "wellness-data", `{"mood":[]}`))

	second, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	value, found, err := second.Get(ctx, "wellness-data")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"mood":[]}`, value)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wellness-data.json", entries[0].Name())
}

func TestNewFileStore_RequiresDirectory(t *testing.T) {
	_, err := NewFileStore("", zap.NewNop())
	assert.Error(t, err)

	nested := filepath.Join(t.TempDir(), "a", "b")
	_, err = NewFileStore(nested, zap.NewNop())
	require.NoError(t, err)
	assert.DirExists(t, nested)
}

func TestEncryptedStore_StoresCiphertext(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore(zap.NewNop())

	encryptor, err := security.NewEncryptorFromPassphrase("secret")
	require.NoError(t, err)
	store := NewEncryptedStore(inner, encryptor)

	require.NoError(t, store.Set(ctx, "wellness-reports-v2", `[{"name":"Blood Test Report"}]`))

	raw, found, err := inner.Get(ctx, "wellness-reports-v2")
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, raw, "Blood Test Report")

	// Plaintext written behind the wrapper's back fails to open
	require.NoError(t, inner.Set(ctx, "wellness-reports-v2", `[]`))
	_, _, err = store.Get(ctx, "wellness-reports-v2")
	assert.Error(t, err)
}
