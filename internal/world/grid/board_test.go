package grid

import (
	"testing"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(LatLng{}, 1e-4, 8)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

func TestBoard_同一坐标返回同一句柄(t *testing.T) {
	b := newTestBoard(t)
	c1 := b.Cell(3, -4)
	c2 := b.Cell(3, -4)
	if c1 != c2 {
		t.Fatalf("期望同一指针, c1=%p c2=%p", c1, c2)
	}
	if c1.String() != "3,-4" {
		t.Fatalf("key=%q", c1.String())
	}
	if b.CellForPoint(b.CellCenter(c1)) != c1 {
		t.Fatalf("CellForPoint(中心点) 应返回同一句柄")
	}
}

func TestBoard_Lookup不登记(t *testing.T) {
	b := newTestBoard(t)
	if c, ok := b.Lookup(7, 7); ok || c != nil || b.KnownCells() != 0 {
		t.Fatalf("未见过的格子: c=%v ok=%v known=%d", c, ok, b.KnownCells())
	}
	want := b.Cell(7, 7)
	if c, ok := b.Lookup(7, 7); !ok || c != want {
		t.Fatalf("登记后应返回同一句柄, c=%p want=%p", c, want)
	}
}

func TestBoard_CellForPoint_负坐标向下取整(t *testing.T) {
	b := newTestBoard(t)
	c := b.CellForPoint(LatLng{Lat: -0.00005, Lng: 0.00015})
	if c.I() != -1 || c.J() != 1 {
		t.Fatalf("got (%d,%d) want (-1,1)", c.I(), c.J())
	}
}

func TestBoard_CellBounds(t *testing.T) {
	b, err := NewBoard(LatLng{Lat: 10, Lng: 20}, 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	got := b.CellBounds(b.Cell(2, -1))
	want := Bounds{SouthWest: LatLng{Lat: 11, Lng: 19.5}, NorthEast: LatLng{Lat: 11.5, Lng: 20}}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
	if !got.Contains(LatLng{Lat: 11.2, Lng: 19.7}) || got.Contains(LatLng{Lat: 11.5, Lng: 19.7}) {
		t.Fatalf("Contains 应为左闭右开")
	}
}

// 原点 (0,0)、格宽 1e-4、半径 8：共 256 个格子，覆盖 [-8,8)。
func TestBoard_CellsNearPoint_256格(t *testing.T) {
	b := newTestBoard(t)
	cells := b.CellsNearPoint(LatLng{}, 8)
	if len(cells) != 256 {
		t.Fatalf("len=%d", len(cells))
	}
	idx := 0
	for i := -8; i < 8; i++ {
		for j := -8; j < 8; j++ {
			c := cells[idx]
			if c.I() != i || c.J() != j {
				t.Fatalf("idx=%d got (%d,%d) want (%d,%d)", idx, c.I(), c.J(), i, j)
			}
			if c != b.Cell(i, j) {
				t.Fatalf("(%d,%d) 不是规范句柄", i, j)
			}
			idx++
		}
	}
	if b.KnownCells() != 256 {
		t.Fatalf("known=%d", b.KnownCells())
	}
}

func TestBoard_CellsNearPoint_半径为零(t *testing.T) {
	b := newTestBoard(t)
	if got := b.CellsNearPoint(LatLng{}, 0); len(got) != 0 {
		t.Fatalf("got %d cells", len(got))
	}
}

func TestNewBoard_非法格宽(t *testing.T) {
	if _, err := NewBoard(LatLng{}, 0, 8); err != ErrInvalidTileWidth {
		t.Fatalf("err=%v", err)
	}
}
