package port

import "context"

// KVStore 外部键值存储，只按字符串 key 读写字符串。
type KVStore interface {
	// Get key 不存在时返回 ok=false、err=nil。
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Entry 一个待写入的键值对。
type Entry struct {
	Key   string
	Value string
}

// BatchSetter 能把多个 key 放进一次原子写入的存储额外实现；
// 要么全部写入，要么全部不写。没实现的存储逐个 Set。
type BatchSetter interface {
	SetMany(ctx context.Context, entries []Entry) error
}

// Closer 需要释放连接/文件句柄的存储额外实现。
type Closer interface {
	Close(ctx context.Context) error
}
