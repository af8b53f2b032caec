package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"GeoCoin/internal/session/infra/persistence/bolt"
	"GeoCoin/internal/session/infra/persistence/gormkv"
	"GeoCoin/internal/session/infra/persistence/memory"
	"GeoCoin/internal/session/infra/persistence/mongodb"
	"GeoCoin/internal/session/port"
	boltinfra "GeoCoin/internal/shared/infrastructure/bolt"
	"GeoCoin/internal/shared/infrastructure/db"
	mongoinfra "GeoCoin/internal/shared/infrastructure/mongo"
	"GeoCoin/internal/shared/serverconfig"
)

const (
	DriverBolt     = "bolt"
	DriverMemory   = "memory"
	DriverMongoDB  = "mongodb"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Store 会话存储，调用方负责 Close。
type Store interface {
	port.KVStore
	port.Closer
}

// Open 按 store.driver 打开对应的 kv 后端。
func Open(ctx context.Context, cfg serverconfig.StoreConfig, l *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case DriverBolt, "":
		b, err := boltinfra.Open(cfg.Bolt, l)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		return bolt.NewKVStore(b, cfg.Bolt.Bucket), nil
	case DriverMemory:
		return memory.NewKVStore(), nil
	case DriverMongoDB:
		client, err := mongoinfra.Open(ctx, cfg.MongoDB, l)
		if err != nil {
			return nil, fmt.Errorf("open mongodb store: %w", err)
		}
		return mongodb.NewKVStore(client, cfg.MongoDB.Database, cfg.MongoDB.Collection), nil
	case DriverMySQL:
		g, err := db.OpenMySQL(cfg.MySQL)
		if err != nil {
			return nil, fmt.Errorf("open mysql store: %w", err)
		}
		return openGorm(g)
	case DriverPostgres:
		g, err := db.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return openGorm(g)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openGorm(g *gorm.DB) (Store, error) {
	s, err := gormkv.NewKVStore(g)
	if err != nil {
		return nil, fmt.Errorf("migrate session table: %w", err)
	}
	return s, nil
}
