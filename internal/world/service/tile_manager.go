package service

import (
	"errors"

	"GeoCoin/internal/world/entity"
	"GeoCoin/internal/world/grid"
	"GeoCoin/internal/world/luck"
)

// TileManager 持有当前可见范围内的坑。
//
// 每个格子的状态：Unknown -> Active -> Inactive(memento) -> Active -> ...
// 同一格子最多一个活跃的坑。
type TileManager struct {
	gen      luck.Generator
	mementos *entity.Mementos

	active map[*grid.Cell]*entity.Pit
	order  []*grid.Cell
}

func NewTileManager(gen luck.Generator, mementos *entity.Mementos) *TileManager {
	if mementos == nil {
		mementos = entity.NewMementos()
	}
	return &TileManager{
		gen:      gen,
		mementos: mementos,
		active:   make(map[*grid.Cell]*entity.Pit),
	}
}

// ActivateVisible 为每个还没激活的格子决定是否有坑：
// 有 memento 的格子一定恢复（不再做出生判定），否则按生成器判定并生成新坑。
//
// memento 损坏的格子跳过且保留原 memento，错误通过 errors.Join 汇总返回。
func (m *TileManager) ActivateVisible(cells []*grid.Cell) error {
	var errs []error
	for _, c := range cells {
		if _, ok := m.active[c]; ok {
			continue
		}
		pit, err := m.spawn(c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if pit == nil {
			continue
		}
		m.active[c] = pit
		m.order = append(m.order, c)
	}
	return errors.Join(errs...)
}

func (m *TileManager) spawn(c *grid.Cell) (*entity.Pit, error) {
	key := c.String()
	if s, ok := m.mementos.Get(key); ok {
		pit, err := entity.DecodeMemento(c.I(), c.J(), s)
		if err != nil {
			return nil, err
		}
		// 激活期间状态只在实例里，映射里不保留旧 memento
		m.mementos.Delete(key)
		return pit, nil
	}
	if !m.gen.Spawns(c.I(), c.J()) {
		return nil, nil
	}
	return entity.NewPit(c.I(), c.J(), m.gen.InitialValue(c.I(), c.J())), nil
}

// DeactivateAll 把所有活跃坑转成 memento 写回映射。
func (m *TileManager) DeactivateAll() {
	for _, c := range m.order {
		pit := m.active[c]
		m.mementos.Put(c.String(), pit.ToMemento())
	}
	m.active = make(map[*grid.Cell]*entity.Pit)
	m.order = nil
}

// Pit 返回格子上活跃的坑。
func (m *TileManager) Pit(c *grid.Cell) (*entity.Pit, bool) {
	p, ok := m.active[c]
	return p, ok
}

func (m *TileManager) ActiveCells() []*grid.Cell {
	out := make([]*grid.Cell, len(m.order))
	copy(out, m.order)
	return out
}

// ActivePits 按激活顺序返回活跃坑。
func (m *TileManager) ActivePits() []*entity.Pit {
	out := make([]*entity.Pit, 0, len(m.order))
	for _, c := range m.order {
		out = append(out, m.active[c])
	}
	return out
}

func (m *TileManager) ActiveCount() int {
	return len(m.order)
}

// Mementos 非活跃格子的映射，由会话持有。
func (m *TileManager) Mementos() *entity.Mementos {
	return m.mementos
}

// Snapshot 非活跃 memento 加上活跃坑的编码（不驱逐），用于持久化。
// 活跃坑追加在后面，顺序与激活顺序一致。
func (m *TileManager) Snapshot() *entity.Mementos {
	out := m.mementos.Clone()
	for _, c := range m.order {
		out.Put(c.String(), entity.EncodeMemento(m.active[c]))
	}
	return out
}

// Reset 丢弃所有活跃坑和 memento。
func (m *TileManager) Reset() {
	m.active = make(map[*grid.Cell]*entity.Pit)
	m.order = nil
	m.mementos.Reset()
}
