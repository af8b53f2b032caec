package grid

import (
	"errors"
	"math"
	"sync"
)

var ErrInvalidTileWidth = errors.New("tile width must be positive")

// Board 把连续坐标映射到格子，并驻留格子句柄。
//
// knownCells 只增不减，生命周期与会话一致。
type Board struct {
	origin    LatLng
	tileWidth float64
	radius    int

	mu         sync.Mutex
	knownCells map[cellKey]*Cell
}

type cellKey struct {
	i, j int
}

func NewBoard(origin LatLng, tileWidth float64, radius int) (*Board, error) {
	if !(tileWidth > 0) || math.IsInf(tileWidth, 0) {
		return nil, ErrInvalidTileWidth
	}
	if radius < 0 {
		radius = 0
	}
	return &Board{
		origin:     origin,
		tileWidth:  tileWidth,
		radius:     radius,
		knownCells: make(map[cellKey]*Cell),
	}, nil
}

func (b *Board) Origin() LatLng        { return b.origin }
func (b *Board) TileWidth() float64    { return b.tileWidth }
func (b *Board) VisibilityRadius() int { return b.radius }

// Cell 返回 (i,j) 的规范句柄，首次访问时登记。
func (b *Board) Cell(i, j int) *Cell {
	k := cellKey{i: i, j: j}

	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.knownCells[k]; ok {
		return c
	}
	c := newCell(i, j)
	b.knownCells[k] = c
	return c
}

// Lookup 只查不登记；没见过的格子返回 false。
func (b *Board) Lookup(i, j int) (*Cell, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.knownCells[cellKey{i: i, j: j}]
	return c, ok
}

// KnownCells 已登记的格子数量。
func (b *Board) KnownCells() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.knownCells)
}

func (b *Board) CellForPoint(p LatLng) *Cell {
	i := int(math.Floor((p.Lat - b.origin.Lat) / b.tileWidth))
	j := int(math.Floor((p.Lng - b.origin.Lng) / b.tileWidth))
	return b.Cell(i, j)
}

func (b *Board) CellBounds(c *Cell) Bounds {
	return Bounds{
		SouthWest: LatLng{
			Lat: b.origin.Lat + float64(c.i)*b.tileWidth,
			Lng: b.origin.Lng + float64(c.j)*b.tileWidth,
		},
		NorthEast: LatLng{
			Lat: b.origin.Lat + float64(c.i+1)*b.tileWidth,
			Lng: b.origin.Lng + float64(c.j+1)*b.tileWidth,
		},
	}
}

// CellCenter 格子中心点。方向移动会把玩家放到目标格中心，避免浮点累积误差跨格。
func (b *Board) CellCenter(c *Cell) LatLng {
	return LatLng{
		Lat: b.origin.Lat + (float64(c.i)+0.5)*b.tileWidth,
		Lng: b.origin.Lng + (float64(c.j)+0.5)*b.tileWidth,
	}
}

// CellsNearPoint 返回 [i-r, i+r) x [j-r, j+r) 内的格子，i 外层升序、j 内层升序。
func (b *Board) CellsNearPoint(p LatLng, radius int) []*Cell {
	if radius <= 0 {
		return nil
	}
	center := b.CellForPoint(p)
	out := make([]*Cell, 0, 4*radius*radius)
	for i := center.i - radius; i < center.i+radius; i++ {
		for j := center.j - radius; j < center.j+radius; j++ {
			out = append(out, b.Cell(i, j))
		}
	}
	return out
}

// VisibleCells 使用 Board 配置的可见半径。
func (b *Board) VisibleCells(p LatLng) []*Cell {
	return b.CellsNearPoint(p, b.radius)
}
