package actors

import (
	"context"
	"errors"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"GeoCoin/internal/game/service"
	"GeoCoin/internal/shared/actor/messages"
	"GeoCoin/modules/kit/logx"
	"GeoCoin/modules/kit/tracex"
)

type State int

const (
	None State = iota
	Init
	Online
	Stopping
	Offline
)

var (
	errNilRequest = errors.New("nil request")
	errNotOnline  = errors.New("game not online")
)

// GameActor 唯一持有 service.Game 的地方。mailbox 是单消费者队列，
// 一次移动的 驱逐 -> 改位置 -> 激活 -> 落盘 在下一条消息之前一定跑完。
type GameActor struct {
	state      State
	game       *service.Game
	dispatcher *Dispatcher
	log        logx.Logger
	// 单条消息的处理上下文，只限制落盘时间
	handleTimeout time.Duration
}

func NewGameActor(game *service.Game, l logx.Logger) *GameActor {
	if l == nil {
		l = logx.Nop()
	}
	return &GameActor{
		state:         None,
		game:          game,
		dispatcher:    NewDispatcher(),
		log:           l,
		handleTimeout: 5 * time.Second,
	}
}

func (a *GameActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.state = Init
		a.init()
	case *actor.Stopping:
		a.state = Stopping
	case *actor.Stopped:
		a.state = Offline
		a.log.Info("game actor stopped")
	case *actor.Restarting:
		a.state = Init
	default:
		if !a.dispatcher.Handles(msg) {
			return
		}
		if a.state != Online {
			ctx.Respond(&messages.Reply{Err: errNotOnline})
			return
		}
		a.dispatcher.Dispatch(ctx, a, msg)
	}
}

func (a *GameActor) init() {
	ctx := tracex.EnsureTraceID(context.Background())
	v := a.game.Start(ctx)
	a.state = Online
	a.log.WithContext(ctx).Info("game online",
		zap.Int("cell_i", v.CellI),
		zap.Int("cell_j", v.CellJ),
		zap.Int("pits", len(v.Pits)),
		zap.Int("points", v.Points),
	)
}

// handlerContext 外部调用方的超时不传进来：已接收的移动必须完整执行。
func (a *GameActor) handlerContext() (context.Context, context.CancelFunc) {
	ctx := tracex.EnsureTraceID(context.Background())
	return context.WithTimeout(ctx, a.handleTimeout)
}

func (a *GameActor) Game() *service.Game {
	return a.game
}

func (a *GameActor) State() State {
	return a.state
}
