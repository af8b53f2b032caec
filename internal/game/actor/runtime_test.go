package actor

import (
	"context"
	"sync"
	"testing"
	"time"

	"GeoCoin/internal/game/service"
	"GeoCoin/internal/session"
	"GeoCoin/internal/session/infra/persistence/memory"
	"GeoCoin/internal/shared/transport"
	"GeoCoin/internal/world/grid"
)

func newTestRuntime(t *testing.T, store *memory.KVStore) *Runtime {
	t.Helper()
	g, err := service.NewGame(service.Options{
		Origin:           grid.LatLng{Lat: 36.9995, Lng: -122.0533},
		TileWidth:        1e-4,
		VisibilityRadius: 2,
		SpawnProbability: 0.5,
	}, store, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	r := NewRuntime(g, nil, 2*time.Second)
	t.Cleanup(r.Shutdown)
	return r
}

func TestRuntime_并发移动串行执行(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	r := newTestRuntime(t, store)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Move(ctx, "north"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Move: %v", err)
	}

	v, err := r.View(ctx)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if v.CellI != n || v.CellJ != 0 {
		t.Fatalf("%d 次向北移动后应在 %d,0, got=%d,%d", n, n, v.CellI, v.CellJ)
	}
	// 每个格子最多一个坑
	seen := make(map[string]bool)
	for _, p := range v.Pits {
		k := grid.Key(p.I, p.J)
		if seen[k] {
			t.Fatalf("格子 %s 有多个活跃坑", k)
		}
		seen[k] = true
	}
	lat, _, _ := store.Get(ctx, session.KeyPlayerLat)
	if lat == "" {
		t.Fatalf("移动后应已落盘")
	}
}

func TestRuntime_参数错误映射(t *testing.T) {
	r := newTestRuntime(t, memory.NewKVStore())
	_, err := r.Move(context.Background(), "sideways")
	if CodeFromError(err) != transport.InvalidParam {
		t.Fatalf("code=%d err=%v", CodeFromError(err), err)
	}
}

func TestRuntime_业务拒绝不是错误(t *testing.T) {
	r := newTestRuntime(t, memory.NewKVStore())
	res, err := r.Deposit(context.Background(), 1000, 1000)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Changed || res.Reason != service.ReasonNoPit {
		t.Fatalf("res=%+v", res)
	}
}
