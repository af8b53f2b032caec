package dc

import (
	"context"
	"errors"
	"testing"

	"GeoCoin/internal/session"
	"GeoCoin/internal/session/infra/persistence/memory"
	"GeoCoin/internal/session/port"
	"GeoCoin/internal/world/entity"
	"GeoCoin/internal/world/grid"
)

type fixedState session.State

func (s fixedState) SessionState() session.State { return session.State(s) }

type flakyStore struct {
	*memory.KVStore
	fail bool
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.KVStore.Set(ctx, key, value)
}

func (s *flakyStore) SetMany(ctx context.Context, entries []port.Entry) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.KVStore.SetMany(ctx, entries)
}

func TestSessionDC_失败后下一次写入清除pending(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{KVStore: memory.NewKVStore(), fail: true}
	d := NewSessionDC(store)
	st := fixedState{Position: grid.LatLng{Lat: 1, Lng: 2}, Mementos: entity.NewMementos()}

	if _, err := d.Flush(ctx, st); err == nil {
		t.Fatalf("存储失败应返回错误")
	}
	if !d.Pending() || d.SavedVersion() != 0 {
		t.Fatalf("pending=%v saved=%d", d.Pending(), d.SavedVersion())
	}

	store.fail = false
	v, err := d.Flush(ctx, st)
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if v != 2 || d.SavedVersion() != 2 || d.Pending() {
		t.Fatalf("v=%d saved=%d pending=%v", v, d.SavedVersion(), d.Pending())
	}

	got, err := d.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Position != st.Position {
		t.Fatalf("position=%+v", got.Position)
	}
}
