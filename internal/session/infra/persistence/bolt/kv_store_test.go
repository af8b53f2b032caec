package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"go.etcd.io/bbolt"

	"GeoCoin/internal/session/port"
)

func openTemp(t *testing.T) *bbolt.DB {
	t.Helper()
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "kv.db"), 0o600, nil)
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	return db
}

func TestKVStore_读写(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(openTemp(t), "session")
	defer s.Close(ctx)

	if _, ok, err := s.Get(ctx, "playerLat"); err == nil || ok {
		t.Fatalf("bucket 未创建时应报错, ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "playerLat", "36.9995"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "playerLat")
	if err != nil || !ok || v != "36.9995" {
		t.Fatalf("Get=%q ok=%v err=%v", v, ok, err)
	}
	if _, ok, err := s.Get(ctx, "playerLng"); err != nil || ok {
		t.Fatalf("缺失 key 应返回 ok=false, ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "playerCoins", ""); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := s.Get(ctx, "playerCoins"); !ok || v != "" {
		t.Fatalf("空字符串也算存在, v=%q ok=%v", v, ok)
	}
}

func TestKVStore_重新打开后数据仍在(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := NewKVStore(db, "session")
	if err := s.Set(ctx, "mementoKeys", "0,1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}

	db, err = bbolt.Open(path, 0o600, nil)
	if err != nil {
		t.Fatal(err)
	}
	s = NewKVStore(db, "session")
	defer s.Close(ctx)
	if v, ok, err := s.Get(ctx, "mementoKeys"); err != nil || !ok || v != "0,1" {
		t.Fatalf("Get=%q ok=%v err=%v", v, ok, err)
	}
}

func TestKVStore_批量写同一事务(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore(openTemp(t), "session")
	defer s.Close(ctx)

	entries := []port.Entry{
		{Key: "mementoKeys", Value: "1,2,3,4"},
		{Key: "mementoValues", Value: "5|1:2#1,0|"},
	}
	if err := s.SetMany(ctx, entries); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	for _, e := range entries {
		if v, ok, err := s.Get(ctx, e.Key); err != nil || !ok || v != e.Value {
			t.Fatalf("%s=%q ok=%v err=%v", e.Key, v, ok, err)
		}
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.SetMany(cancelled, []port.Entry{{Key: "mementoKeys", Value: ""}}); err == nil {
		t.Fatalf("ctx 已取消应报错")
	}
	if v, _, _ := s.Get(ctx, "mementoKeys"); v != "1,2,3,4" {
		t.Fatalf("取消的写入不应生效, got=%q", v)
	}
}
