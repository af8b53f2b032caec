package errx

import (
	"errors"
	"testing"
)

func TestError_Is_只按code比较(t *testing.T) {
	e1 := NewSys("CORRUPTED_STATE", "a").WithData("cell", "1,2").WithCause(errors.New("bad int"))
	e2 := NewSys("CORRUPTED_STATE", "b")
	if !errors.Is(e1, e2) {
		t.Fatalf("errors.Is 应只比较 code, e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, NewSys("CORRUPTED_SESSION", "")) {
		t.Fatalf("不同 code 不应相等")
	}
}

func TestError_业务错误不带栈(t *testing.T) {
	cause := errors.New("no keys")
	err := NewBiz("NO_SAVED_SESSION", "没有存档").WithCause(cause)
	if err.Stack() != nil {
		t.Fatalf("业务错误不应捕获栈")
	}
	if !err.IsBiz() {
		t.Fatalf("期望 IsBiz")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause 链丢失: %v", err)
	}
}

func TestError_系统错误只捕获一次栈(t *testing.T) {
	inner := NewSys("SERVICE_UNAVAILABLE", "kv 不可用").WithCause(errors.New("disk full"))
	if len(inner.Stack()) == 0 {
		t.Fatalf("系统错误应捕获栈")
	}
	outer := NewSys("CORRUPTED_SESSION", "加载失败").WithCause(inner)
	if outer.Stack() != nil {
		t.Fatalf("cause 链里已有栈，外层不应重复捕获")
	}
}

func TestError_Data_拷贝隔离(t *testing.T) {
	m := map[string]any{"key": "mementoKeys"}
	err := NewBiz("X", "").WithDataMap(m)
	m["key"] = "mutated"
	if got := err.Data()["key"]; got != "mementoKeys" {
		t.Fatalf("data 被外部修改: %v", got)
	}
}

type reasonCode string

func (r reasonCode) ReasonCode() string { return string(r) }

func TestError_WithReason(t *testing.T) {
	err := NewBiz("PIT_EMPTY", "").WithReason(reasonCode("value_zero"))
	if err.Reason() != "value_zero" {
		t.Fatalf("reason=%q", err.Reason())
	}
}
