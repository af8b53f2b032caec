package dc

import (
	"context"
	"sync"

	"GeoCoin/internal/session"
	"GeoCoin/internal/session/port"
)

// Snapshotter 提供当前要落盘的会话状态。
type Snapshotter interface {
	SessionState() session.State
}

// SessionDC 会话的读写入口。
//
// 每次改状态后同步整份写入；写失败时记下 pending，下一次 Flush 会连同最新状态一起重写，
// 所以不需要重放失败的那一次。
type SessionDC struct {
	store port.KVStore

	mu      sync.Mutex
	version uint64
	saved   uint64
	pending bool
}

func NewSessionDC(store port.KVStore) *SessionDC {
	return &SessionDC{store: store}
}

func (d *SessionDC) Load(ctx context.Context) (session.State, error) {
	return session.Load(ctx, d.store)
}

// Flush 写入 src 当前的全部状态，返回本次写入的版本号。
func (d *SessionDC) Flush(ctx context.Context, src Snapshotter) (uint64, error) {
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	if err := session.Save(ctx, d.store, src.SessionState()); err != nil {
		d.mu.Lock()
		d.pending = true
		d.mu.Unlock()
		return version, err
	}

	d.mu.Lock()
	if version > d.saved {
		d.saved = version
	}
	d.pending = false
	d.mu.Unlock()
	return version, nil
}

// Pending 上一次写入失败、还没被后续写入覆盖。
func (d *SessionDC) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// SavedVersion 最近一次成功写入的版本。
func (d *SessionDC) SavedVersion() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved
}

// Close 释放存储（如果存储需要）。
func (d *SessionDC) Close(ctx context.Context) error {
	if c, ok := d.store.(port.Closer); ok {
		return c.Close(ctx)
	}
	return nil
}
