package actor

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"GeoCoin/internal/game/actors"
	"GeoCoin/internal/game/service"
	"GeoCoin/internal/shared/actor/messages"
	"GeoCoin/internal/shared/transport"
	"GeoCoin/modules/kit/errx"
	"GeoCoin/modules/kit/logx"
)

const defaultAskTimeout = 3 * time.Second

type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime 外部（HTTP/WS）访问 GameActor 的入口。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	game    *protoactor.PID
	timeout time.Duration
}

func NewRuntime(game *service.Game, l logx.Logger, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewGameActor(game, l)
	})
	return &Runtime{
		system:  system,
		root:    root,
		game:    root.Spawn(props),
		timeout: askTimeout,
	}
}

// Shutdown 等 mailbox 里已接收的消息处理完再停。
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.game != nil {
		_ = r.root.PoisonFuture(r.game).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) Move(ctx context.Context, direction string) (service.Result, error) {
	return r.ask(ctx, &messages.Move{Direction: direction})
}

func (r *Runtime) Locate(ctx context.Context, lat, lng float64) (service.Result, error) {
	return r.ask(ctx, &messages.Locate{Lat: lat, Lng: lng})
}

func (r *Runtime) Poke(ctx context.Context, i, j int) (service.Result, error) {
	return r.ask(ctx, &messages.Poke{I: i, J: j})
}

func (r *Runtime) Deposit(ctx context.Context, i, j int) (service.Result, error) {
	return r.ask(ctx, &messages.Deposit{I: i, J: j})
}

func (r *Runtime) Reset(ctx context.Context) (service.Result, error) {
	return r.ask(ctx, &messages.Reset{})
}

func (r *Runtime) View(ctx context.Context) (service.View, error) {
	res, err := r.ask(ctx, &messages.View{})
	return res.View, err
}

func (r *Runtime) ask(ctx context.Context, msg any) (service.Result, error) {
	res, err := r.request(msg, r.timeoutFromContext(ctx))
	if err != nil {
		return service.Result{}, err
	}
	reply, ok := res.(*messages.Reply)
	if !ok || reply == nil {
		return service.Result{}, &RuntimeError{Code: transport.SystemError, Message: "actor 返回类型非法"}
	}
	result, _ := reply.Result.(service.Result)
	if reply.Err != nil {
		return result, &RuntimeError{Code: codeOf(reply.Err), Message: "game 处理失败", Cause: reply.Err}
	}
	return result, nil
}

func (r *Runtime) request(msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil || r.game == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	// 超时只限制调用方等待多久；消息一旦进了 mailbox 就会执行完
	future := r.root.RequestFuture(r.game, msg, timeout)
	res, err := future.Result()
	if err != nil {
		code := transport.SystemError
		if errors.Is(err, protoactor.ErrTimeout) {
			code = transport.Timeout
		}
		return nil, &RuntimeError{Code: code, Message: "actor 请求失败", Cause: err}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func codeOf(err error) int {
	switch {
	case errors.Is(err, errx.ErrReqParamERR):
		return transport.InvalidParam
	case errors.Is(err, errx.ErrUnavailable):
		return transport.Unavailable
	case errors.Is(err, errx.ErrTimeout):
		return transport.Timeout
	default:
		return transport.SystemError
	}
}

// CodeFromError 把 Runtime 返回的错误映射成响应体 code。
func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
