package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"GeoCoin/internal/shared/logs"
	"GeoCoin/internal/shared/serverconfig"
)

const slowQuery = 200 * time.Millisecond

// OpenMySQL username:password@tcp(host:port)/dbname?charset=...&parseTime=True&loc=Local
func OpenMySQL(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, charset)

	db, err := open(mysql.Open(dsn), cfg.MaxIdle, cfg.MaxConn)
	if err != nil {
		return nil, err
	}
	logs.Info("open mysql success",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return db, nil
}

func OpenPostgres(cfg serverconfig.PostgresConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}
	db, err := open(postgres.Open(cfg.DSN), cfg.MaxIdle, cfg.MaxConn)
	if err != nil {
		return nil, err
	}
	logs.Info("open postgres success")
	return db, nil
}

func open(d gorm.Dialector, maxIdle, maxConn int) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logs.NewGormLogger(logger.Warn, slowQuery),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if maxConn > 0 {
		sqlDB.SetMaxOpenConns(maxConn)
	}
	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	return db, nil
}
