package entity

import (
	"errors"
	"strconv"
	"strings"

	"GeoCoin/modules/kit/errx"
)

// MementoSeparator 分隔 value 和硬币列表，硬币编号里不会出现。
const MementoSeparator = "|"

// EncodeMemento "<value>|<coin>,<coin>,..."，不修改 pit。
func EncodeMemento(p *Pit) string {
	return strconv.Itoa(p.value) + MementoSeparator + JoinCoins(p.stash)
}

// DecodeMemento 根据 memento 还原 (i,j) 上的坑。
func DecodeMemento(i, j int, s string) (*Pit, error) {
	p := NewPit(i, j, 0)
	if err := p.FromMemento(s); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeFields(s string) (int, []Coin, *errx.Error) {
	rawValue, rawStash, ok := strings.Cut(s, MementoSeparator)
	if !ok {
		return 0, nil, corrupted("memento", s, errors.New("missing separator"))
	}
	value, err := strconv.Atoi(rawValue)
	if err != nil {
		return 0, nil, corrupted("memento", s, err)
	}
	if value < 0 {
		return 0, nil, corrupted("memento", s, errors.New("negative value"))
	}
	if strings.Contains(rawStash, MementoSeparator) {
		return 0, nil, corrupted("memento", s, errors.New("duplicate separator"))
	}
	stash, err := SplitCoins(rawStash)
	if err != nil {
		return 0, nil, corrupted("memento", s, err)
	}
	return value, stash, nil
}
