package bolt

import (
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"GeoCoin/internal/shared/serverconfig"
)

// Open 打开（必要时创建）本地 bolt 文件，并确保 bucket 存在。
func Open(cfg serverconfig.BoltConfig, l *zap.Logger) (*bbolt.DB, error) {
	if l == nil {
		l = zap.NewNop()
	}
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	timeout := time.Duration(cfg.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = time.Second
	}

	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(cfg.Bucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	l.Info("open bolt success", zap.String("path", cfg.Path), zap.String("bucket", cfg.Bucket))
	return db, nil
}
