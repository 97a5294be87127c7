package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vcscsvcscs/wellness-companion/internal/security"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Backend drivers accepted by Open
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverBlob     = "blob"
	DriverMongo    = "mongo"
)

// OpenOptions select and configure the backing store
type OpenOptions struct {
	Driver string

	// file
	Dir string

	// postgres
	DatabaseURL     string
	Table           string
	MaxConns        int32
	ConnMaxLifetime time.Duration

	// blob
	BlobAccountName string
	BlobAccountKey  string
	BlobContainer   string

	// mongo
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// EncryptionKey seals every value when set
	EncryptionKey string
}

// Backend is an opened backing store with its connection resources
type Backend struct {
	Store KeyValueStore
	// Pool is set for the postgres driver
	Pool *pgxpool.Pool
	// Ping is nil for drivers without a connectivity check
	Ping func(ctx context.Context) error

	closers []func(ctx context.Context)
}

// Close releases the connections held by the backend
func (b *Backend) Close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i](ctx)
	}
}

// Open connects the backing store selected by opts.Driver
func Open(ctx context.Context, opts OpenOptions, logger *zap.Logger) (*Backend, error) {
	b := &Backend{}

	switch opts.Driver {
	case DriverMemory:
		b.Store = NewMemoryStore(logger)

	case DriverFile:
		store, err := NewFileStore(opts.Dir, logger)
		if err != nil {
			return nil, err
		}
		b.Store = store

	case DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database url: %w", err)
		}
		if opts.MaxConns > 0 {
			poolCfg.MaxConns = opts.MaxConns
		}
		if opts.ConnMaxLifetime > 0 {
			poolCfg.MaxConnLifetime = opts.ConnMaxLifetime
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		b.closers = append(b.closers, func(context.Context) { pool.Close() })

		if err := pool.Ping(ctx); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		store := NewPostgresStore(pool, opts.Table, logger)
		if err := store.EnsureSchema(ctx); err != nil {
			b.Close(ctx)
			return nil, err
		}

		b.Store = store
		b.Pool = pool
		b.Ping = pool.Ping

	case DriverBlob:
		store, err := NewBlobStore(opts.BlobAccountName, opts.BlobAccountKey, opts.BlobContainer, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob store: %w", err)
		}
		b.Store = store
		b.Ping = store.Ping

	case DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		b.closers = append(b.closers, func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				logger.Warn("failed to disconnect from mongo", zap.Error(err))
			}
		})

		ping := func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}
		if err := ping(ctx); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("failed to ping mongo: %w", err)
		}

		b.Store = NewMongoStore(client.Database(opts.MongoDatabase).Collection(opts.MongoCollection), logger)
		b.Ping = ping

	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}

	if opts.EncryptionKey != "" {
		encryptor, err := security.NewEncryptorFromPassphrase(opts.EncryptionKey)
		if err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("failed to create encryptor: %w", err)
		}
		b.Store = NewEncryptedStore(b.Store, encryptor)
	}

	logger.Info("backing store opened",
		zap.String("driver", opts.Driver),
		zap.Bool("encrypted", opts.EncryptionKey != ""),
	)

	return b, nil
}
