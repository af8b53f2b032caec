package logs

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"GeoCoin/internal/shared/serverconfig"
)

func TestSetLevel(t *testing.T) {
	if err := Init("test", serverconfig.LogConfig{Level: "warn"}); err != nil {
		t.Fatal(err)
	}
	if Level() != zapcore.WarnLevel {
		t.Fatalf("level=%v", Level())
	}
	SetLevel("DEBUG")
	if Level() != zapcore.DebugLevel {
		t.Fatalf("level=%v", Level())
	}
	SetLevel("不存在")
	if Level() != zapcore.InfoLevel {
		t.Fatalf("非法级别应回退到 info, got=%v", Level())
	}
}
