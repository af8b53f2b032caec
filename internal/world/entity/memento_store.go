package entity

// Mementos 是非活跃格子的 memento 映射，按插入顺序迭代。
//
// 覆盖已有 key 保留原位置；删除后再写入会排到末尾。
type Mementos struct {
	keys   []string
	values map[string]string
}

func NewMementos() *Mementos {
	return &Mementos{values: make(map[string]string)}
}

func (m *Mementos) Len() int {
	return len(m.keys)
}

func (m *Mementos) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Mementos) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *Mementos) Put(key, memento string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = memento
}

func (m *Mementos) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for idx, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:idx], m.keys[idx+1:]...)
			return
		}
	}
}

// Range 按迭代顺序遍历，fn 返回 false 时停止。
func (m *Mementos) Range(fn func(key, memento string) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Keys 返回拷贝。
func (m *Mementos) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Mementos) Clone() *Mementos {
	out := &Mementos{
		keys:   m.Keys(),
		values: make(map[string]string, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

func (m *Mementos) Reset() {
	m.keys = nil
	m.values = make(map[string]string)
}
