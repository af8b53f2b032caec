package luck

import (
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// 取 xxhash64 的高 53 位作为尾数，保证结果落在 [0,1)。
const mantissaBits = 53

// Sample 是纯函数：同一个 key 在任何进程里都得到同一个值。
func Sample(key string) float64 {
	h := xxhash.Sum64String(key)
	return float64(h>>(64-mantissaBits)) / float64(uint64(1)<<mantissaBits)
}

const initialValueTag = "initialValue"

// Generator 决定格子是否有坑以及坑的初始值。
type Generator struct {
	spawnProbability float64
}

func NewGenerator(spawnProbability float64) Generator {
	return Generator{spawnProbability: math.Max(0, math.Min(1, spawnProbability))}
}

func (g Generator) SpawnProbability() float64 { return g.spawnProbability }

// SpawnKey "i,j"
func SpawnKey(i, j int) string {
	return strconv.Itoa(i) + "," + strconv.Itoa(j)
}

// ValueKey "i,j:initialValue"
func ValueKey(i, j int) string {
	return SpawnKey(i, j) + ":" + initialValueTag
}

func (g Generator) Spawns(i, j int) bool {
	return Sample(SpawnKey(i, j)) < g.spawnProbability
}

// InitialValue floor(sample * 100)，范围 [0,99]。
func (g Generator) InitialValue(i, j int) int {
	return int(math.Floor(Sample(ValueKey(i, j)) * 100))
}
