package entity

import (
	"errors"
	"strconv"
	"strings"
)

// Coin 由出生格子和序号确定，创建后不再变化；只在余额和坑之间移动。
type Coin struct {
	I      int
	J      int
	Serial int
}

// String "<i>:<j>#<serial>"
func (c Coin) String() string {
	return strconv.Itoa(c.I) + ":" + strconv.Itoa(c.J) + "#" + strconv.Itoa(c.Serial)
}

// ParseCoin 解析 "<i>:<j>#<serial>"。
func ParseCoin(raw string) (Coin, error) {
	cell, serial, ok := strings.Cut(raw, "#")
	if !ok {
		return Coin{}, corrupted("coin", raw, errors.New("missing '#'"))
	}
	si, sj, ok := strings.Cut(cell, ":")
	if !ok {
		return Coin{}, corrupted("coin", raw, errors.New("missing ':'"))
	}
	i, err := strconv.Atoi(si)
	if err != nil {
		return Coin{}, corrupted("coin", raw, err)
	}
	j, err := strconv.Atoi(sj)
	if err != nil {
		return Coin{}, corrupted("coin", raw, err)
	}
	n, err := strconv.Atoi(serial)
	if err != nil {
		return Coin{}, corrupted("coin", raw, err)
	}
	return Coin{I: i, J: j, Serial: n}, nil
}

// JoinCoins 逗号拼接，空列表得到空串。
func JoinCoins(coins []Coin) string {
	parts := make([]string, len(coins))
	for idx, c := range coins {
		parts[idx] = c.String()
	}
	return strings.Join(parts, ",")
}

// SplitCoins 是 JoinCoins 的逆操作。
func SplitCoins(raw string) ([]Coin, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]Coin, 0, len(parts))
	for _, p := range parts {
		c, err := ParseCoin(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
