package session

import "GeoCoin/modules/kit/errx"

const (
	CodeNoSavedSession   errx.Code = "NO_SAVED_SESSION"
	CodeCorruptedSession errx.Code = "CORRUPTED_SESSION"
)

var (
	// ErrNoSavedSession 不是故障：跳过恢复，从头开始。
	ErrNoSavedSession = errx.NewBiz(CodeNoSavedSession, "没有存档")
	// ErrCorruptedSession 整个加载失败，不做部分恢复。
	ErrCorruptedSession = errx.NewSys(CodeCorruptedSession, "存档损坏")
)
