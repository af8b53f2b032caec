package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"GeoCoin/internal/game/dc"
	playerentity "GeoCoin/internal/player/entity"
	"GeoCoin/internal/session"
	"GeoCoin/internal/session/port"
	"GeoCoin/internal/world/entity"
	"GeoCoin/internal/world/grid"
	"GeoCoin/internal/world/luck"
	worldsvc "GeoCoin/internal/world/service"
	"GeoCoin/modules/kit/errx"
	"GeoCoin/modules/kit/logx"
)

// Game 单个玩家的整局状态：格子、活跃坑、玩家、会话存储。
//
// 不是并发安全的，所有调用都要经过同一个 actor 串行化。
type Game struct {
	board  *grid.Board
	gen    luck.Generator
	tiles  *worldsvc.TileManager
	player *playerentity.Player
	dc     *dc.SessionDC
	log    logx.Logger
}

func NewGame(opts Options, store port.KVStore, l logx.Logger) (*Game, error) {
	board, err := grid.NewBoard(opts.Origin, opts.TileWidth, opts.VisibilityRadius)
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = logx.Nop()
	}
	gen := luck.NewGenerator(opts.SpawnProbability)
	return &Game{
		board:  board,
		gen:    gen,
		tiles:  worldsvc.NewTileManager(gen, entity.NewMementos()),
		player: playerentity.NewPlayer(opts.Origin, nil),
		dc:     dc.NewSessionDC(store),
		log:    l,
	}, nil
}

// Start 恢复存档并激活可见格子。
// 没有存档、存档损坏、存储不可用都从起点重新开始，不会失败。
func (g *Game) Start(ctx context.Context) View {
	st, err := g.dc.Load(ctx)
	switch {
	case err == nil:
		g.player = playerentity.NewPlayer(st.Position, st.Balance)
		g.tiles = worldsvc.NewTileManager(g.gen, st.Mementos)
		g.log.WithContext(ctx).Info("session restored",
			zap.Float64("lat", st.Position.Lat),
			zap.Float64("lng", st.Position.Lng),
			zap.Int("coins", len(st.Balance)),
			zap.Int("mementos", st.Mementos.Len()),
		)
	case errors.Is(err, session.ErrNoSavedSession):
		logx.ReportBizWithLoggerContext(ctx, g.log, logx.NewBizLog("game.start", string(session.CodeNoSavedSession), "start fresh"))
	default:
		logx.ReportSysErrorWithLoggerContext(ctx, g.log, logx.NewSysLog("game.start", err))
	}
	g.player.ClearDirty()
	g.activate(ctx, g.player.Position())
	return g.View()
}

// Move 向一个方向移动一格，落在目标格中心。
func (g *Game) Move(ctx context.Context, d Direction) (Result, error) {
	di, dj := d.delta()
	if di == 0 && dj == 0 {
		return Result{}, errx.ErrReqParamERR.WithData("direction", string(d))
	}
	cur := g.board.CellForPoint(g.player.Position())
	target := g.board.Cell(cur.I()+di, cur.J()+dj)
	return g.relocate(ctx, g.board.CellCenter(target))
}

// Locate 定位更新：把玩家放到任意坐标。
func (g *Game) Locate(ctx context.Context, pos grid.LatLng) (Result, error) {
	return g.relocate(ctx, pos)
}

// relocate 完整的移动周期：全部驱逐 -> 改位置 -> 激活可见格子 -> 落盘。
func (g *Game) relocate(ctx context.Context, pos grid.LatLng) (Result, error) {
	g.tiles.DeactivateAll()
	g.player.MoveTo(pos)
	g.activate(ctx, pos)
	// 位置没变时重建出来的状态和上次落盘的一致，不用再写；上次写失败的除外
	if !g.player.Dirty() && !g.dc.Pending() {
		return Result{Changed: true, View: g.View()}, nil
	}
	err := g.persist(ctx, "game.move")
	return Result{Changed: true, View: g.View()}, err
}

// Poke 从坑里取一枚硬币放进余额。
func (g *Game) Poke(ctx context.Context, i, j int) (Result, error) {
	pit, ok := g.activePit(i, j)
	if !ok {
		return g.reject(ctx, "game.poke", ReasonNoPit, i, j), nil
	}
	coin, ok := pit.Deplete()
	if !ok {
		return g.reject(ctx, "game.poke", ReasonPitEmpty, i, j), nil
	}
	g.player.Collect(coin)
	err := g.persist(ctx, "game.poke")
	return Result{Changed: true, Coin: coin.String(), View: g.View()}, err
}

// Deposit 把最后收集的硬币放回坑里。
func (g *Game) Deposit(ctx context.Context, i, j int) (Result, error) {
	pit, ok := g.activePit(i, j)
	if !ok {
		return g.reject(ctx, "game.deposit", ReasonNoPit, i, j), nil
	}
	coin, ok := g.player.Spend()
	if !ok {
		return g.reject(ctx, "game.deposit", ReasonBalanceEmpty, i, j), nil
	}
	pit.Refill(coin)
	pit.Increment()
	err := g.persist(ctx, "game.deposit")
	return Result{Changed: true, Coin: coin.String(), View: g.View()}, err
}

// Reset 清空存档：回到起点，余额和 memento 全部丢弃。
func (g *Game) Reset(ctx context.Context) (Result, error) {
	g.tiles.Reset()
	g.player.Reset(g.board.Origin())
	g.activate(ctx, g.board.Origin())
	err := g.persist(ctx, "game.reset")
	return Result{Changed: true, View: g.View()}, err
}

// activePit 客户端传来的坐标不登记进格子表；活跃坑所在的格子一定已登记。
func (g *Game) activePit(i, j int) (*entity.Pit, bool) {
	c, ok := g.board.Lookup(i, j)
	if !ok {
		return nil, false
	}
	return g.tiles.Pit(c)
}

func (g *Game) activate(ctx context.Context, pos grid.LatLng) {
	err := g.tiles.ActivateVisible(g.board.VisibleCells(pos))
	if err == nil {
		return
	}
	// 每个损坏的格子单独记一条
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			logx.ReportSysErrorWithLoggerContext(ctx, g.log, logx.NewSysLog("game.activate", e))
		}
		return
	}
	logx.ReportSysErrorWithLoggerContext(ctx, g.log, logx.NewSysLog("game.activate", err))
}

func (g *Game) persist(ctx context.Context, action string) error {
	if _, err := g.dc.Flush(ctx, g); err != nil {
		logx.ReportSysErrorWithLoggerContext(ctx, g.log, logx.NewSysLog(action, err))
		return err
	}
	g.player.ClearDirty()
	return nil
}

func (g *Game) reject(ctx context.Context, action, reason string, i, j int) Result {
	logx.ReportBizWithLoggerContext(ctx, g.log, logx.NewBizLog(action, reason, grid.Key(i, j)))
	return Result{Changed: false, Reason: reason, View: g.View()}
}

// SessionState 实现 dc.Snapshotter。活跃坑以不驱逐的方式编码进去。
func (g *Game) SessionState() session.State {
	return session.State{
		Position: g.player.Position(),
		Balance:  g.player.Balance(),
		Mementos: g.tiles.Snapshot(),
	}
}

// View 给界面用的只读快照。
func (g *Game) View() View {
	pos := g.player.Position()
	cell := g.board.CellForPoint(pos)
	v := View{
		Position:    pos,
		CellI:       cell.I(),
		CellJ:       cell.J(),
		CellTooltip: fmt.Sprintf("You are located at cell: %d , %d", cell.I(), cell.J()),
		Balance:     coinStrings(g.player.Balance()),
		Points:      g.player.Points(),
		Status:      g.player.Status(),
		Mementos:    g.tiles.Mementos().Len(),
	}
	for _, c := range g.tiles.ActiveCells() {
		pit, _ := g.tiles.Pit(c)
		v.Pits = append(v.Pits, PitView{
			I:           c.I(),
			J:           c.J(),
			Bounds:      g.board.CellBounds(c),
			Value:       pit.Value(),
			Stash:       coinStrings(pit.Stash()),
			Description: fmt.Sprintf("There is a pit here at %q. It has value %d.", c.String(), pit.Value()),
		})
	}
	return v
}

// Total 所有坑（活跃 + memento）的 value 之和加上余额硬币数。poke/deposit 不改变它。
func (g *Game) Total() (int, error) {
	total := g.player.Points()
	var err error
	g.tiles.Snapshot().Range(func(key, memento string) bool {
		var p *entity.Pit
		if p, err = entity.DecodeMemento(0, 0, memento); err != nil {
			return false
		}
		total += p.Value()
		return true
	})
	return total, err
}

func (g *Game) Board() *grid.Board { return g.board }

func coinStrings(coins []entity.Coin) []string {
	out := make([]string, 0, len(coins))
	for _, c := range coins {
		out = append(out, c.String())
	}
	return out
}
