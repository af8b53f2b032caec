package entity

import (
	"GeoCoin/internal/world/grid"
)

// Pit 挂在某个格子上的坑：可耗尽的 value 和按收集顺序排列的硬币。
//
// 约束：value 始终 >= 0。
type Pit struct {
	i, j  int
	value int
	stash []Coin
}

func NewPit(i, j, value int) *Pit {
	if value < 0 {
		value = 0
	}
	return &Pit{i: i, j: j, value: value}
}

func (p *Pit) I() int { return p.i }
func (p *Pit) J() int { return p.j }

// Key 与 grid.Cell.String() 一致。
func (p *Pit) Key() string { return grid.Key(p.i, p.j) }

func (p *Pit) Value() int { return p.value }

// Stash 返回拷贝。
func (p *Pit) Stash() []Coin {
	if len(p.stash) == 0 {
		return nil
	}
	out := make([]Coin, len(p.stash))
	copy(out, p.stash)
	return out
}

// Deplete value 为 0 时什么都不做；否则铸一枚硬币（序号取扣减前的 value）并减 1。
func (p *Pit) Deplete() (Coin, bool) {
	if p.value <= 0 {
		return Coin{}, false
	}
	c := Coin{I: p.i, J: p.j, Serial: p.value}
	p.value--
	return c, true
}

// Refill 只把硬币放进 stash，不改 value；value 由调用方 Increment。
func (p *Pit) Refill(c Coin) {
	p.stash = append(p.stash, c)
}

func (p *Pit) Increment() {
	p.value++
}

// ToMemento 编码后把实例清空（value=0、stash 为空），表示已被驱逐。
func (p *Pit) ToMemento() string {
	s := EncodeMemento(p)
	p.value = 0
	p.stash = nil
	return s
}

// FromMemento 覆盖当前状态；解析失败时实例保持原样。
func (p *Pit) FromMemento(s string) error {
	value, stash, err := decodeFields(s)
	if err != nil {
		return err.WithData("cell", p.Key())
	}
	p.value = value
	p.stash = stash
	return nil
}
