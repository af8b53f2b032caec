package service

import (
	"errors"
	"reflect"
	"testing"

	"GeoCoin/internal/world/entity"
	"GeoCoin/internal/world/grid"
	"GeoCoin/internal/world/luck"
)

func newBoard(t *testing.T) *grid.Board {
	t.Helper()
	b, err := grid.NewBoard(grid.LatLng{}, 1e-4, 8)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

// findSpawnCell 找一个会出生、初始值至少为 minValue 的格子。
func findSpawnCell(t *testing.T, b *grid.Board, gen luck.Generator, minValue int) *grid.Cell {
	t.Helper()
	for i := 0; i < 200; i++ {
		for j := 0; j < 200; j++ {
			if gen.Spawns(i, j) && gen.InitialValue(i, j) >= minValue {
				return b.Cell(i, j)
			}
		}
	}
	t.Fatalf("没找到满足条件的格子")
	return nil
}

func TestTileManager_只激活出生格子(t *testing.T) {
	b := newBoard(t)
	gen := luck.NewGenerator(0.1)
	m := NewTileManager(gen, nil)

	cells := b.CellsNearPoint(grid.LatLng{}, 8)
	if err := m.ActivateVisible(cells); err != nil {
		t.Fatalf("ActivateVisible: %v", err)
	}
	want := 0
	for _, c := range cells {
		_, active := m.Pit(c)
		if active != gen.Spawns(c.I(), c.J()) {
			t.Fatalf("(%d,%d) active=%v", c.I(), c.J(), active)
		}
		if active {
			want++
			p, _ := m.Pit(c)
			if p.Value() != gen.InitialValue(c.I(), c.J()) {
				t.Fatalf("(%d,%d) 初始值错误", c.I(), c.J())
			}
		}
	}
	if m.ActiveCount() != want {
		t.Fatalf("active=%d want=%d", m.ActiveCount(), want)
	}
}

func TestTileManager_每格最多一个坑(t *testing.T) {
	b := newBoard(t)
	m := NewTileManager(luck.NewGenerator(1), nil)
	cells := b.CellsNearPoint(grid.LatLng{}, 2)

	_ = m.ActivateVisible(cells)
	_ = m.ActivateVisible(cells)
	_ = m.ActivateVisible(append(cells, cells...))
	if m.ActiveCount() != len(cells) {
		t.Fatalf("active=%d want=%d", m.ActiveCount(), len(cells))
	}
	// 激活顺序即行优先顺序
	for idx, p := range m.ActivePits() {
		if p.Key() != cells[idx].String() {
			t.Fatalf("pit[%d]=%s want %s", idx, p.Key(), cells[idx])
		}
	}
}

// 离开再回来：被戳了 3 次的坑状态完全一致。
func TestTileManager_离开再回来状态不丢(t *testing.T) {
	b := newBoard(t)
	gen := luck.NewGenerator(0.1)
	m := NewTileManager(gen, nil)
	target := findSpawnCell(t, b, gen, 3)
	other := entity.NewPit(1000, 1000, 0)

	_ = m.ActivateVisible([]*grid.Cell{target})
	pit, ok := m.Pit(target)
	if !ok {
		t.Fatalf("目标格子未激活")
	}
	for n := 0; n < 3; n++ {
		c, ok := pit.Deplete()
		if !ok {
			t.Fatalf("deplete 失败")
		}
		other.Refill(c)
	}
	pit.Refill(entity.Coin{I: -5, J: 5, Serial: 1})
	wantValue, wantStash := pit.Value(), pit.Stash()

	m.DeactivateAll()
	if pit.Value() != 0 || pit.Stash() != nil {
		t.Fatalf("驱逐后旧实例应变成惰性")
	}
	if !m.Mementos().Has(target.String()) || m.ActiveCount() != 0 {
		t.Fatalf("驱逐后应只剩 memento")
	}

	// 走远：目标格子不在可见范围
	_ = m.ActivateVisible(b.CellsNearPoint(grid.LatLng{Lat: 1, Lng: 1}, 2))
	m.DeactivateAll()

	_ = m.ActivateVisible([]*grid.Cell{target})
	back, ok := m.Pit(target)
	if !ok {
		t.Fatalf("回来后坑应重新出现")
	}
	if back.Value() != wantValue || !reflect.DeepEqual(back.Stash(), wantStash) {
		t.Fatalf("got value=%d stash=%v want value=%d stash=%v", back.Value(), back.Stash(), wantValue, wantStash)
	}
	if m.Mementos().Has(target.String()) {
		t.Fatalf("激活中的格子不应保留 memento")
	}
}

func TestTileManager_有memento一定重生(t *testing.T) {
	b := newBoard(t)
	mementos := entity.NewMementos()
	c := b.Cell(4, 4)
	mementos.Put(c.String(), "0|")

	m := NewTileManager(luck.NewGenerator(0), mementos)
	if err := m.ActivateVisible([]*grid.Cell{c, b.Cell(5, 5)}); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Pit(c); !ok {
		t.Fatalf("有 memento 的格子应无视出生概率")
	}
	if _, ok := m.Pit(b.Cell(5, 5)); ok {
		t.Fatalf("概率为 0 时不应生成新坑")
	}
	m.DeactivateAll()
	if v, ok := mementos.Get(c.String()); !ok || v != "0|" {
		t.Fatalf("零值坑也要保留 memento, got=%q ok=%v", v, ok)
	}
}

func TestTileManager_损坏memento只影响单格(t *testing.T) {
	b := newBoard(t)
	mementos := entity.NewMementos()
	bad, good := b.Cell(1, 1), b.Cell(2, 2)
	mementos.Put(bad.String(), "garbage")
	mementos.Put(good.String(), "5|")

	m := NewTileManager(luck.NewGenerator(0), mementos)
	err := m.ActivateVisible([]*grid.Cell{bad, good})
	if !errors.Is(err, entity.ErrCorruptedState) {
		t.Fatalf("期望 CorruptedState, got=%v", err)
	}
	if _, ok := m.Pit(bad); ok {
		t.Fatalf("损坏格子不应激活")
	}
	if p, ok := m.Pit(good); !ok || p.Value() != 5 {
		t.Fatalf("正常格子应恢复")
	}
	if v, _ := mementos.Get(bad.String()); v != "garbage" {
		t.Fatalf("损坏 memento 不应被改写, got=%q", v)
	}
}

func TestTileManager_Snapshot不驱逐(t *testing.T) {
	b := newBoard(t)
	mementos := entity.NewMementos()
	mementos.Put("9,9", "1|")
	m := NewTileManager(luck.NewGenerator(1), mementos)
	c := b.Cell(0, 0)
	_ = m.ActivateVisible([]*grid.Cell{c})

	snap := m.Snapshot()
	if got := snap.Keys(); !reflect.DeepEqual(got, []string{"9,9", "0,0"}) {
		t.Fatalf("keys=%v", got)
	}
	if _, ok := m.Pit(c); !ok || mementos.Has("0,0") {
		t.Fatalf("Snapshot 不应改变活跃集合或映射")
	}
}
