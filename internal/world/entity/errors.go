package entity

import "GeoCoin/modules/kit/errx"

const (
	// CodeCorruptedState 单个格子的 memento 或硬币编号无法解析。
	CodeCorruptedState errx.Code = "CORRUPTED_STATE"
)

// ErrCorruptedState 只影响出问题的那个格子，不影响整个会话。
var ErrCorruptedState = errx.NewSys(CodeCorruptedState, "pit memento 损坏")

func corrupted(what, raw string, cause error) *errx.Error {
	e := ErrCorruptedState.WithData("field", what).WithData("raw", raw)
	if cause != nil {
		e = e.WithCause(cause)
	}
	return e
}
