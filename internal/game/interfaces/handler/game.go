package handler

import (
	"context"
	"errors"
	"math"

	"GeoCoin/internal/game/actor"
	"GeoCoin/internal/game/service"
	"GeoCoin/internal/shared/transport"
	"GeoCoin/modules/kit/logx"
)

// GameRuntime 处理器需要的游戏操作，由 actor.Runtime 实现。
type GameRuntime interface {
	Move(ctx context.Context, direction string) (service.Result, error)
	Locate(ctx context.Context, lat, lng float64) (service.Result, error)
	Poke(ctx context.Context, i, j int) (service.Result, error)
	Deposit(ctx context.Context, i, j int) (service.Result, error)
	Reset(ctx context.Context) (service.Result, error)
	View(ctx context.Context) (service.View, error)
}

var _ GameRuntime = (*actor.Runtime)(nil)

// Game HTTP 和 WS 处理器共用的依赖。
type Game struct {
	Runtime GameRuntime
	Log     logx.Logger
}

func NewGame(rt GameRuntime, l logx.Logger) *Game {
	if l == nil {
		l = logx.Nop()
	}
	return &Game{Runtime: rt, Log: l}
}

// HandleError 把 runtime 错误转成响应 code 和提示，技术错误在这里记一次。
func (g *Game) HandleError(ctx context.Context, action string, err error) (int, string) {
	code := actor.CodeFromError(err)
	switch {
	case code == transport.InvalidParam:
		return code, "参数有误"
	case code == transport.Timeout:
		logx.ReportSysErrorWithLoggerContext(ctx, g.Log, logx.NewSysLog(action, err))
		return code, "请求超时"
	case code == transport.Unavailable:
		logx.ReportSysErrorWithLoggerContext(ctx, g.Log, logx.NewSysLog(action, err))
		return code, "存档写入失败"
	default:
		logx.ReportSysErrorWithLoggerContext(ctx, g.Log, logx.NewSysLog(action, err))
		return transport.SystemError, "系统错误"
	}
}

var ErrBadCoordinate = errors.New("coordinate out of range")

// ValidLatLng 经纬度必须是有限值且在地理范围内。
func ValidLatLng(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return ErrBadCoordinate
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrBadCoordinate
	}
	return nil
}
