package service

import (
	"strings"

	"GeoCoin/internal/world/grid"
)

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// ParseDirection 大小写不敏感，也接受首字母。
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, true
	case "south", "s", "down":
		return South, true
	case "east", "e", "right":
		return East, true
	case "west", "w", "left":
		return West, true
	}
	return "", false
}

// delta 北/南改纬度（i），东/西改经度（j）。
func (d Direction) delta() (di, dj int) {
	switch d {
	case North:
		return 1, 0
	case South:
		return -1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	}
	return 0, 0
}

// 业务拒绝的原因码，不是错误。
const (
	ReasonNoPit        = "no_pit"
	ReasonPitEmpty     = "pit_empty"
	ReasonBalanceEmpty = "balance_empty"
)

// Options 游戏参数，来自配置的 game 段。
type Options struct {
	Origin           grid.LatLng
	TileWidth        float64
	VisibilityRadius int
	SpawnProbability float64
}

type PitView struct {
	I           int         `json:"i"`
	J           int         `json:"j"`
	Bounds      grid.Bounds `json:"bounds"`
	Value       int         `json:"value"`
	Stash       []string    `json:"stash"`
	Description string      `json:"description"`
}

type View struct {
	Position    grid.LatLng `json:"position"`
	CellI       int         `json:"cell_i"`
	CellJ       int         `json:"cell_j"`
	CellTooltip string      `json:"cell_tooltip"`
	Balance     []string    `json:"balance"`
	Points      int         `json:"points"`
	Status      string      `json:"status"`
	Pits        []PitView   `json:"pits"`
	Mementos    int         `json:"mementos"`
}

// Result 一次操作的结果。Changed=false 时 Reason 说明为什么没变化。
type Result struct {
	Changed bool   `json:"changed"`
	Reason  string `json:"reason,omitempty"`
	Coin    string `json:"coin,omitempty"`
	View    View   `json:"view"`
}
