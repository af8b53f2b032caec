package grid

import (
	"strconv"
)

// Cell 是无限整数网格上的一个格子。字段不导出，创建后不可变。
// 同一 (i,j) 只会有一个 *Cell，由 Board 负责驻留。
type Cell struct {
	i, j int
	key  string
}

func newCell(i, j int) *Cell {
	return &Cell{i: i, j: j, key: Key(i, j)}
}

func (c *Cell) I() int { return c.i }
func (c *Cell) J() int { return c.j }

// String 返回 "i,j"，也是内存里 memento 映射的 key。
func (c *Cell) String() string { return c.key }

// Key 按 "i,j" 拼接坐标。
func Key(i, j int) string {
	return strconv.Itoa(i) + "," + strconv.Itoa(j)
}

// LatLng 地理坐标（度）。
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds 矩形范围，SouthWest 为较小的一角。
type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// Contains 左闭右开，与 CellForPoint 的 floor 语义一致。
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat >= b.SouthWest.Lat && p.Lat < b.NorthEast.Lat &&
		p.Lng >= b.SouthWest.Lng && p.Lng < b.NorthEast.Lng
}
