package luck

import (
	"math"
	"testing"
)

func TestSample_确定且在区间内(t *testing.T) {
	keys := []string{"", "0,0", "3,4", "3,4:initialValue", "-17,99", "x"}
	for _, k := range keys {
		a, b := Sample(k), Sample(k)
		if a != b {
			t.Fatalf("key=%q 两次结果不同 %v %v", k, a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("key=%q 越界 %v", k, a)
		}
	}
}

// 跨进程稳定：xxhash64 是固定算法，空串的哈希值是公开常量。
func TestSample_跨进程稳定(t *testing.T) {
	const emptyHash uint64 = 0xef46db3751d8e999
	want := float64(emptyHash>>11) / float64(uint64(1)<<53)
	if got := Sample(""); got != want {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestSample_分布大致均匀(t *testing.T) {
	const n = 20000
	below := 0
	for i := 0; i < n; i++ {
		if Sample(SpawnKey(i, -i)) < 0.1 {
			below++
		}
	}
	ratio := float64(below) / n
	if math.Abs(ratio-0.1) > 0.02 {
		t.Fatalf("spawn 比例偏离太多: %v", ratio)
	}
}

func TestGenerator_出生判定与初始值(t *testing.T) {
	g := NewGenerator(0.1)
	found := 0
	for i := -20; i < 20 && found < 5; i++ {
		for j := -20; j < 20; j++ {
			s := Sample(SpawnKey(i, j))
			if g.Spawns(i, j) != (s < 0.1) {
				t.Fatalf("(%d,%d) Spawns 与 Sample 不一致", i, j)
			}
			if !g.Spawns(i, j) {
				continue
			}
			found++
			want := int(math.Floor(Sample(ValueKey(i, j)) * 100))
			if got := g.InitialValue(i, j); got != want || got < 0 || got > 99 {
				t.Fatalf("(%d,%d) InitialValue=%d want=%d", i, j, got, want)
			}
		}
	}
	if found == 0 {
		t.Fatalf("40x40 范围内没有任何坑")
	}
}

func TestKeys(t *testing.T) {
	if SpawnKey(3, 4) != "3,4" || ValueKey(3, 4) != "3,4:initialValue" {
		t.Fatalf("key 格式错误: %q %q", SpawnKey(3, 4), ValueKey(3, 4))
	}
	if NewGenerator(2).SpawnProbability() != 1 || NewGenerator(-1).SpawnProbability() != 0 {
		t.Fatalf("概率应被夹到 [0,1]")
	}
}
