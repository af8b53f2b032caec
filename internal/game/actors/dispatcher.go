package actors

import (
	"fmt"
	"reflect"

	"github.com/asynkron/protoactor-go/actor"

	"GeoCoin/internal/shared/actor/messages"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value // handler 函数
	reqType reflect.Type  // 请求类型
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, GH.HandleMove)
	register(d, GH.HandleLocate)
	register(d, GH.HandlePoke)
	register(d, GH.HandleDeposit)
	register(d, GH.HandleReset)
	register(d, GH.HandleView)
}

// register 按请求类型注册，要求 Req 是指针类型。
func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, a *GameActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType.Kind() != reflect.Ptr {
		panic("dispatcher req type must be pointer message")
	}
	if _, dup := d.handlers[reqType]; dup {
		panic(fmt.Sprintf("duplicate handler for %s", reqType))
	}
	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

// Handles 是否有该消息类型的 handler。
func (d *Dispatcher) Handles(msg any) bool {
	_, ok := d.handlers[reflect.TypeOf(msg)]
	return ok
}

func (d *Dispatcher) Dispatch(ctx actor.Context, a *GameActor, msg any) {
	if msg == nil {
		ctx.Respond(&messages.Reply{Err: errNilRequest})
		return
	}
	handler, ok := d.handlers[reflect.TypeOf(msg)]
	if !ok {
		ctx.Respond(&messages.Reply{Err: fmt.Errorf("no handler for %T", msg)})
		return
	}
	if v := reflect.ValueOf(msg); v.IsNil() {
		ctx.Respond(&messages.Reply{Err: errNilRequest})
		return
	}
	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(a),
		reflect.ValueOf(msg),
	})
}
