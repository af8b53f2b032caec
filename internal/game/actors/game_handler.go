package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"GeoCoin/internal/game/service"
	"GeoCoin/internal/shared/actor/messages"
	"GeoCoin/internal/world/grid"
	"GeoCoin/modules/kit/errx"
)

type GameHandler struct{}

// 全局实例
var GH = &GameHandler{}

func (h *GameHandler) HandleMove(ctx actor.Context, a *GameActor, req *messages.Move) {
	dir, ok := service.ParseDirection(req.Direction)
	if !ok {
		ctx.Respond(&messages.Reply{Err: errx.ErrReqParamERR.WithData("direction", req.Direction)})
		return
	}
	c, cancel := a.handlerContext()
	defer cancel()
	res, err := a.game.Move(c, dir)
	ctx.Respond(&messages.Reply{Result: res, Err: err})
}

func (h *GameHandler) HandleLocate(ctx actor.Context, a *GameActor, req *messages.Locate) {
	c, cancel := a.handlerContext()
	defer cancel()
	res, err := a.game.Locate(c, grid.LatLng{Lat: req.Lat, Lng: req.Lng})
	ctx.Respond(&messages.Reply{Result: res, Err: err})
}

func (h *GameHandler) HandlePoke(ctx actor.Context, a *GameActor, req *messages.Poke) {
	c, cancel := a.handlerContext()
	defer cancel()
	res, err := a.game.Poke(c, req.I, req.J)
	ctx.Respond(&messages.Reply{Result: res, Err: err})
}

func (h *GameHandler) HandleDeposit(ctx actor.Context, a *GameActor, req *messages.Deposit) {
	c, cancel := a.handlerContext()
	defer cancel()
	res, err := a.game.Deposit(c, req.I, req.J)
	ctx.Respond(&messages.Reply{Result: res, Err: err})
}

func (h *GameHandler) HandleReset(ctx actor.Context, a *GameActor, _ *messages.Reset) {
	c, cancel := a.handlerContext()
	defer cancel()
	res, err := a.game.Reset(c)
	ctx.Respond(&messages.Reply{Result: res, Err: err})
}

func (h *GameHandler) HandleView(ctx actor.Context, a *GameActor, _ *messages.View) {
	ctx.Respond(&messages.Reply{Result: service.Result{View: a.game.View()}})
}
