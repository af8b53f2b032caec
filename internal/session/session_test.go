package session

import (
	"context"
	"errors"
	"testing"

	"GeoCoin/internal/session/infra/persistence/memory"
	"GeoCoin/internal/session/port"
	"GeoCoin/internal/world/entity"
	"GeoCoin/internal/world/grid"
	"GeoCoin/modules/kit/errx"

	"github.com/google/go-cmp/cmp"
)

type flatState struct {
	Position grid.LatLng
	Balance  []entity.Coin
	Keys     []string
	Values   []string
}

func flatten(s State) flatState {
	out := flatState{Position: s.Position, Balance: s.Balance, Keys: s.Mementos.Keys()}
	for _, k := range out.Keys {
		v, _ := s.Mementos.Get(k)
		out.Values = append(out.Values, v)
	}
	return out
}

// 5 个 memento、3 枚硬币，存了再读结构一致。
func TestSaveLoad_结构一致(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()

	mementos := entity.NewMementos()
	mementos.Put("0,0", "0|")
	mementos.Put("-3,7", "12|")
	mementos.Put("4,-1", "5|4:-1#9")
	mementos.Put("10,10", "1|0:0#3,-3:7#2,9:9#1")
	mementos.Put("-8,-8", "99|1:1#1,2:2#2")
	in := State{
		Position: grid.LatLng{Lat: 36.9995, Lng: -122.0533},
		Balance:  []entity.Coin{{I: 1, J: 2, Serial: 3}, {I: -4, J: 0, Serial: 50}, {I: 0, J: 0, Serial: 0}},
		Mementos: mementos,
	}

	if err := Save(ctx, store, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(flatten(in), flatten(out)); diff != "" {
		t.Fatalf("round-trip 不一致 (-want +got):\n%s", diff)
	}
}

func TestSave_存储格式(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	mementos := entity.NewMementos()
	mementos.Put("3,4", "2|1:1#1,1:1#2")
	mementos.Put("-1,0", "0|")

	err := Save(ctx, store, State{
		Position: grid.LatLng{Lat: 0.5, Lng: -1.25},
		Balance:  []entity.Coin{{I: 3, J: 4, Serial: 7}},
		Mementos: mementos,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		KeyPlayerLat:     "0.5",
		KeyPlayerLng:     "-1.25",
		KeyPlayerCoins:   "3:4#7",
		KeyMementoKeys:   "3,4,-1,0",
		KeyMementoValues: "2|1:1#1,1:1#2,0|",
	}
	for k, v := range want {
		got, ok, _ := store.Get(ctx, k)
		if !ok || got != v {
			t.Fatalf("key=%s got=%q want=%q", k, got, v)
		}
	}
}

func TestLoad_没有存档(t *testing.T) {
	_, err := Load(context.Background(), memory.NewKVStore())
	if !errors.Is(err, ErrNoSavedSession) {
		t.Fatalf("err=%v", err)
	}
}

func TestLoad_空会话(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	if err := Save(ctx, store, State{}); err != nil {
		t.Fatal(err)
	}
	out, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Mementos.Len() != 0 || len(out.Balance) != 0 || out.Position != (grid.LatLng{}) {
		t.Fatalf("期望空状态, got=%+v", out)
	}
}

func TestLoad_损坏(t *testing.T) {
	cases := map[string]map[string]string{
		"长度不一致": {KeyMementoKeys: "1,1,2,2", KeyMementoValues: "3|"},
		"奇数坐标":  {KeyMementoKeys: "1,1,2", KeyMementoValues: "3|,4|"},
		"坐标非整数": {KeyMementoKeys: "1,x", KeyMementoValues: "3|"},
		"纬度非法":  {KeyPlayerLat: "north"},
		"硬币非法":  {KeyPlayerCoins: "1:1"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewKVStore()
			if err := Save(ctx, store, State{}); err != nil {
				t.Fatal(err)
			}
			for k, v := range overrides {
				_ = store.Set(ctx, k, v)
			}
			if _, err := Load(ctx, store); !errors.Is(err, ErrCorruptedSession) {
				t.Fatalf("期望 CorruptedSession, got=%v", err)
			}
		})
	}
}

func TestLoad_部分key缺失(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	if err := Save(ctx, store, State{}); err != nil {
		t.Fatal(err)
	}
	store.Delete(KeyMementoValues)
	if _, err := Load(ctx, store); !errors.Is(err, ErrCorruptedSession) {
		t.Fatalf("err=%v", err)
	}
}

func TestGroupMementos(t *testing.T) {
	got := GroupMementos([]string{"3|1:1#1", "1:1#2", "0|", "7|2:2#9"})
	want := []string{"3|1:1#1,1:1#2", "0|", "7|2:2#9"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

// failingStore 只支持逐个 Set，且每次都失败。
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (failingStore) Set(context.Context, string, string) error         { return errors.New("disk full") }

func TestSave_存储失败(t *testing.T) {
	err := Save(context.Background(), failingStore{}, State{})
	if !errors.Is(err, errx.ErrUnavailable) {
		t.Fatalf("期望存储错误, got=%v", err)
	}
}

// batchStore 支持批量写；Set 只计数，批量写失败时什么都不写。
type batchStore struct {
	*memory.KVStore
	sets      int
	failBatch bool
}

func (s *batchStore) Set(ctx context.Context, key, value string) error {
	s.sets++
	return s.KVStore.Set(ctx, key, value)
}

func (s *batchStore) SetMany(ctx context.Context, entries []port.Entry) error {
	if s.failBatch {
		return errors.New("tx aborted")
	}
	return s.KVStore.SetMany(ctx, entries)
}

// 批量写失败时上一份存档保持完整，不会变成一半新一半旧。
func TestSave_批量写原子(t *testing.T) {
	ctx := context.Background()
	store := &batchStore{KVStore: memory.NewKVStore()}

	first := entity.NewMementos()
	first.Put("1,1", "3|")
	if err := Save(ctx, store, State{Position: grid.LatLng{Lat: 1, Lng: 2}, Mementos: first}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.sets != 0 {
		t.Fatalf("支持批量写时不应逐个 Set, sets=%d", store.sets)
	}

	store.failBatch = true
	second := entity.NewMementos()
	second.Put("2,2", "7|2:2#1")
	second.Put("3,3", "0|")
	err := Save(ctx, store, State{Position: grid.LatLng{Lat: 5, Lng: 6}, Mementos: second})
	if !errors.Is(err, errx.ErrUnavailable) {
		t.Fatalf("期望存储错误, got=%v", err)
	}

	out, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("上一份存档应可读: %v", err)
	}
	if out.Position != (grid.LatLng{Lat: 1, Lng: 2}) || out.Mementos.Len() != 1 || !out.Mementos.Has("1,1") {
		t.Fatalf("存档被部分覆盖: %+v %v", out.Position, out.Mementos.Keys())
	}
}
