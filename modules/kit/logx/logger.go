package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是各包共用的最小日志接口：结构化字段 + ctx 透传 trace/span。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}

// Nop 不输出任何内容，测试和未注入 logger 时使用。
func Nop() Logger {
	return NewZapLogger(nil)
}
