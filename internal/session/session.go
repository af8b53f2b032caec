package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"GeoCoin/internal/session/port"
	"GeoCoin/internal/world/entity"
	"GeoCoin/internal/world/grid"
	"GeoCoin/modules/kit/errx"
)

// 存储里的 5 个 key。
const (
	KeyPlayerLat     = "playerLat"
	KeyPlayerLng     = "playerLng"
	KeyPlayerCoins   = "playerCoins"
	KeyMementoKeys   = "mementoKeys"
	KeyMementoValues = "mementoValues"
)

var allKeys = []string{KeyPlayerLat, KeyPlayerLng, KeyPlayerCoins, KeyMementoKeys, KeyMementoValues}

// State 重启后唯一保留下来的东西：位置、余额、memento 映射。
type State struct {
	Position grid.LatLng
	Balance  []entity.Coin
	Mementos *entity.Mementos
}

// Save 把状态拍平写入存储。memento 映射拆成两个按位置对齐的序列。
func Save(ctx context.Context, store port.KVStore, s State) error {
	mementos := s.Mementos
	if mementos == nil {
		mementos = entity.NewMementos()
	}
	keys := make([]string, 0, mementos.Len()*2)
	values := make([]string, 0, mementos.Len())
	var err error
	mementos.Range(func(key, memento string) bool {
		var i, j int
		if i, j, err = parseCellKey(key); err != nil {
			return false
		}
		keys = append(keys, strconv.Itoa(i), strconv.Itoa(j))
		values = append(values, memento)
		return true
	})
	if err != nil {
		return err
	}

	entries := []port.Entry{
		{Key: KeyPlayerLat, Value: formatFloat(s.Position.Lat)},
		{Key: KeyPlayerLng, Value: formatFloat(s.Position.Lng)},
		{Key: KeyPlayerCoins, Value: entity.JoinCoins(s.Balance)},
		{Key: KeyMementoKeys, Value: strings.Join(keys, ",")},
		{Key: KeyMementoValues, Value: strings.Join(values, ",")},
	}
	// 支持批量写的存储一次原子写完，避免崩溃后留下一半新一半旧的存档
	if bs, ok := store.(port.BatchSetter); ok {
		if err := bs.SetMany(ctx, entries); err != nil {
			return errx.ErrUnavailable.WithData("keys", len(entries)).WithCause(err)
		}
		return nil
	}
	for _, e := range entries {
		if err := store.Set(ctx, e.Key, e.Value); err != nil {
			return errx.ErrUnavailable.WithData("key", e.Key).WithCause(err)
		}
	}
	return nil
}

// Load 是 Save 的逆操作。
//   - 5 个 key 都不存在：ErrNoSavedSession
//   - 只存在一部分、坐标/数量对不上、硬币或 key 解析失败：ErrCorruptedSession
func Load(ctx context.Context, store port.KVStore) (State, error) {
	raw := make(map[string]string, len(allKeys))
	var missing []string
	for _, k := range allKeys {
		v, ok, err := store.Get(ctx, k)
		if err != nil {
			return State{}, errx.ErrUnavailable.WithData("key", k).WithCause(err)
		}
		if !ok {
			missing = append(missing, k)
			continue
		}
		raw[k] = v
	}
	if len(missing) == len(allKeys) {
		return State{}, ErrNoSavedSession
	}
	if len(missing) != 0 {
		return State{}, ErrCorruptedSession.WithData("missing", missing)
	}

	lat, err := strconv.ParseFloat(raw[KeyPlayerLat], 64)
	if err != nil {
		return State{}, corrupted(KeyPlayerLat, err)
	}
	lng, err := strconv.ParseFloat(raw[KeyPlayerLng], 64)
	if err != nil {
		return State{}, corrupted(KeyPlayerLng, err)
	}
	balance, err := entity.SplitCoins(raw[KeyPlayerCoins])
	if err != nil {
		return State{}, corrupted(KeyPlayerCoins, err)
	}
	mementos, err := unflattenMementos(raw[KeyMementoKeys], raw[KeyMementoValues])
	if err != nil {
		return State{}, err
	}
	return State{
		Position: grid.LatLng{Lat: lat, Lng: lng},
		Balance:  balance,
		Mementos: mementos,
	}, nil
}

func unflattenMementos(rawKeys, rawValues string) (*entity.Mementos, error) {
	nums := splitList(rawKeys)
	if len(nums)%2 != 0 {
		return nil, corrupted(KeyMementoKeys, fmt.Errorf("odd coordinate count %d", len(nums)))
	}
	values := GroupMementos(splitList(rawValues))
	if len(values) != len(nums)/2 {
		return nil, corrupted(KeyMementoValues, fmt.Errorf("%d keys but %d values", len(nums)/2, len(values)))
	}

	out := entity.NewMementos()
	for idx := 0; idx < len(nums); idx += 2 {
		i, err := strconv.Atoi(nums[idx])
		if err != nil {
			return nil, corrupted(KeyMementoKeys, err)
		}
		j, err := strconv.Atoi(nums[idx+1])
		if err != nil {
			return nil, corrupted(KeyMementoKeys, err)
		}
		out.Put(grid.Key(i, j), values[idx/2])
	}
	return out, nil
}

// GroupMementos 把按逗号切开的 memento 片段重新拼回完整的 memento。
// 带分隔符的片段开始一个新 memento，不带的是上一个 memento 的后续硬币。
// 第一个片段不带分隔符时原样成组，交给 memento 解码报错。
func GroupMementos(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.Contains(tok, entity.MementoSeparator) || len(out) == 0 {
			out = append(out, tok)
			continue
		}
		out[len(out)-1] += "," + tok
	}
	return out
}

func parseCellKey(key string) (int, int, error) {
	si, sj, ok := strings.Cut(key, ",")
	if !ok {
		return 0, 0, corrupted("cellKey", errors.New("missing ','"))
	}
	i, err := strconv.Atoi(si)
	if err != nil {
		return 0, 0, corrupted("cellKey", err)
	}
	j, err := strconv.Atoi(sj)
	if err != nil {
		return 0, 0, corrupted("cellKey", err)
	}
	return i, j, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func corrupted(key string, cause error) *errx.Error {
	return ErrCorruptedSession.WithData("key", key).WithCause(cause)
}
