package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, OpenOptions{Driver: DriverMemory}, zap.NewNop())
	require.NoError(t, err)
	defer b.Close(ctx)

	assert.IsType(t, &MemoryStore{}, b.Store)
	assert.Nil(t, b.Pool)
	assert.Nil(t, b.Ping)
}

func TestOpen_FileWithEncryption(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := Open(ctx, OpenOptions{Driver: DriverFile, Dir: dir, EncryptionKey: "passphrase"}, zap.NewNop())
	require.NoError(t, err)
	defer b.Close(ctx)

	require.IsType(t, &EncryptedStore{}, b.Store)
	require.NoError(t, b.Store.Set(ctx, "wellness-checklist", `[{"id":"1"}]`))

	// The file on disk holds the sealed value
	plain, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	raw, found, err := plain.Get(ctx, "wellness-checklist")
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, raw, `"id"`)

	value, found, err := b.Store.Get(ctx, "wellness-checklist")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, value)
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts OpenOptions
	}{
		{"unknown driver", OpenOptions{Driver: "redis"}},
		{"file without dir", OpenOptions{Driver: DriverFile}},
		{"blob without credentials", OpenOptions{Driver: DriverBlob, BlobContainer: "state"}},
		{"bad database url", OpenOptions{Driver: DriverPostgres, DatabaseURL: "postgres://localhost:notaport/wellness"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(ctx, tt.opts, zap.NewNop())
			assert.Error(t, err)
			assert.Nil(t, b)
		})
	}
}
