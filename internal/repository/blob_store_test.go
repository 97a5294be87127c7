package repository

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNewBlobStore(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name          string
		accountName   string
		accountKey    string
		containerName string
		wantErr       bool
	}{
		{
			name:          "valid configuration",
			accountName:   "testaccount",
			accountKey:    "dGVzdGtleQ==",
			containerName: "wellness-state",
			wantErr:       false,
		},
		{
			name:          "missing account name",
			accountKey:    "dGVzdGtleQ==",
			containerName: "wellness-state",
			wantErr:       true,
		},
		{
			name:          "missing account key",
			accountName:   "testaccount",
			containerName: "wellness-state",
			wantErr:       true,
		},
		{
			name:        "missing container name",
			accountName: "testaccount",
			accountKey:  "dGVzdGtleQ==",
			wantErr:     true,
		},
		{
			name:          "invalid account key format",
			accountName:   "testaccount",
			accountKey:    "invalid-key-format",
			containerName: "wellness-state",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewBlobStore(tt.accountName, tt.accountKey, tt.containerName, logger)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewBlobStore() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && store.containerName != tt.containerName {
				t.Errorf("containerName = %v, want %v", store.containerName, tt.containerName)
			}
		})
	}
}

func TestBlobStore_KeyValidation(t *testing.T) {
	store, err := NewBlobStore("testaccount", "dGVzdGtleQ==", "wellness-state", zap.NewNop())
	if err != nil {
		t.Skipf("Skipping test due to client creation error: %v", err)
	}

	ctx := context.Background()

	if _, _, err := store.Get(ctx, "../other"); err == nil {
		t.Error("Get() expected error for path traversal key")
	}
	if err := store.Set(ctx, "", "x"); err == nil {
		t.Error("Set() expected error for empty key")
	}
	if err := store.Delete(ctx, "a/b"); err == nil {
		t.Error("Delete() expected error for nested key")
	}
}

func TestBlobName(t *testing.T) {
	if got := blobName("wellness-checklist"); got != "state/wellness-checklist.json" {
		t.Errorf("blobName() = %v", got)
	}
}

func TestMongoStore_KeyValidation(t *testing.T) {
	// Validation runs before the collection is touched
	store := NewMongoStore(nil, zap.NewNop())
	ctx := context.Background()

	if _, _, err := store.Get(ctx, ""); err == nil {
		t.Error("Get() expected error for empty key")
	}
	if err := store.Set(ctx, "a/b", "x"); err == nil {
		t.Error("Set() expected error for nested key")
	}
	if err := store.Delete(ctx, ".."); err == nil {
		t.Error("Delete() expected error for dot key")
	}
}
