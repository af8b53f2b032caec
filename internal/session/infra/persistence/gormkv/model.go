package gormkv

import "time"

// KVEntry mysql 和 postgres 共用的表结构。
type KVEntry struct {
	Key       string    `gorm:"column:k;type:varchar(64);primaryKey;not null;" json:"k"`
	Value     string    `gorm:"column:v;type:text;not null;" json:"v"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime;" json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "session_kv"
}
