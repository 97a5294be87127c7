package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vcscsvcscs/wellness-companion/internal/config"
	"github.com/vcscsvcscs/wellness-companion/internal/repository"
	"github.com/vcscsvcscs/wellness-companion/internal/service"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Checking backing store", zap.String("driver", cfg.Storage.Driver))

	backend, err := repository.Open(ctx, cfg.StoreOptions(), logger)
	if err != nil {
		logger.Fatal("❌ Failed to open backing store", zap.Error(err))
	}
	defer backend.Close(context.Background())

	if backend.Ping != nil {
		if err := backend.Ping(ctx); err != nil {
			logger.Fatal("❌ Ping failed", zap.Error(err))
		}
		logger.Info("✅ Ping succeeded")
	}

	if err := roundTrip(ctx, backend.Store, logger); err != nil {
		logger.Fatal("❌ Round trip failed", zap.Error(err))
	}
	logger.Info("✅ Round trip succeeded")

	reportKeys(ctx, backend.Store, logger)

	logger.Info("🎉 Backing store is ready")
}

// roundTrip writes, reads back and removes a throwaway key
func roundTrip(ctx context.Context, store repository.KeyValueStore, logger *zap.Logger) error {
	key := "store-check-" + uuid.NewString()
	value := fmt.Sprintf(`{"checkedAt":%q}`, time.Now().UTC().Format(time.RFC3339))

	if err := store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set failed: %w", err)
	}
	logger.Info("Probe written", zap.String("key", key))

	got, found, err := store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get failed: %w", err)
	}
	if !found {
		return fmt.Errorf("probe key %s not found after write", key)
	}
	if got != value {
		return fmt.Errorf("read value doesn't match written value")
	}

	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	_, found, err = store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get after delete failed: %w", err)
	}
	if found {
		return fmt.Errorf("probe key %s still present after delete", key)
	}
	return nil
}

// reportKeys logs which wellness collections are already persisted
func reportKeys(ctx context.Context, store repository.KeyValueStore, logger *zap.Logger) {
	for _, key := range service.AllKeys() {
		value, found, err := store.Get(ctx, key)
		switch {
		case err != nil:
			logger.Warn("Failed to read key", zap.String("key", key), zap.Error(err))
		case !found:
			logger.Info("Key not persisted yet", zap.String("key", key))
		default:
			logger.Info("Key persisted", zap.String("key", key), zap.Int("size_bytes", len(value)))
		}
	}
}
