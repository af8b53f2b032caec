package entity

import (
	"fmt"

	"GeoCoin/internal/world/entity"
	"GeoCoin/internal/world/grid"
)

type Coin = entity.Coin

// Player 玩家位置和硬币余额。余额按收集顺序排列，最后收集的先花出去。
type Player struct {
	position grid.LatLng
	balance  []Coin
	dirty    bool
}

func NewPlayer(position grid.LatLng, balance []Coin) *Player {
	p := &Player{position: position}
	if len(balance) != 0 {
		p.balance = append([]Coin(nil), balance...)
	}
	return p
}

func (p *Player) Position() grid.LatLng {
	return p.position
}

func (p *Player) MoveTo(pos grid.LatLng) {
	if p.position == pos {
		return
	}
	p.position = pos
	p.dirty = true
}

// Collect 把硬币放进余额。
func (p *Player) Collect(c Coin) {
	p.balance = append(p.balance, c)
	p.dirty = true
}

// Spend 取出最后收集的硬币；余额为空时返回 false。
func (p *Player) Spend() (Coin, bool) {
	n := len(p.balance)
	if n == 0 {
		return Coin{}, false
	}
	c := p.balance[n-1]
	p.balance = p.balance[:n-1]
	p.dirty = true
	return c, true
}

// Balance 返回拷贝。
func (p *Player) Balance() []Coin {
	if len(p.balance) == 0 {
		return nil
	}
	out := make([]Coin, len(p.balance))
	copy(out, p.balance)
	return out
}

func (p *Player) Points() int {
	return len(p.balance)
}

// Status 状态栏文案。
func (p *Player) Status() string {
	if len(p.balance) == 0 {
		return "No points yet..."
	}
	return fmt.Sprintf("%d points accumulated", len(p.balance))
}

func (p *Player) Dirty() bool {
	return p != nil && p.dirty
}

func (p *Player) ClearDirty() {
	if p != nil {
		p.dirty = false
	}
}

// Reset 回到起点并清空余额。
func (p *Player) Reset(origin grid.LatLng) {
	p.position = origin
	p.balance = nil
	p.dirty = true
}
