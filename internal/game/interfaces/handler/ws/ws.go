package ws

import (
	"context"

	"GeoCoin/internal/game/interfaces/handler"
	"GeoCoin/internal/game/interfaces/handler/dto"
	"GeoCoin/internal/shared/transport"
	"GeoCoin/internal/shared/transport/ws"
)

// WsHandler 定位源通过 websocket 持续推送坐标（geo.locate），也可以拉取状态（game.view）。
type WsHandler struct {
	game *handler.Game
}

func NewWsHandler(g *handler.Game) *WsHandler {
	return &WsHandler{game: g}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	r.Group("geo").Handle("locate", h.Locate)

	gameGroup := r.Group("game")
	gameGroup.Handle("view", h.View)
	gameGroup.Handle("move", h.Move)
}

func (h *WsHandler) Locate(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req dto.LocateReq
	if err := ws.Bind(wsReq, &req); err != nil || req.Lat == nil || req.Lng == nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	if err := handler.ValidLatLng(*req.Lat, *req.Lng); err != nil {
		h.fail(wsResp, transport.InvalidParam, err.Error())
		return
	}
	res, err := h.game.Runtime.Locate(ctx, *req.Lat, *req.Lng)
	if err != nil {
		h.error(ctx, wsResp, "game.locate", err)
		return
	}
	h.ok(wsResp, res)
}

type moveReq struct {
	Direction string `json:"direction"`
}

func (h *WsHandler) Move(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req moveReq
	if err := ws.Bind(wsReq, &req); err != nil || req.Direction == "" {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	res, err := h.game.Runtime.Move(ctx, req.Direction)
	if err != nil {
		h.error(ctx, wsResp, "game.move", err)
		return
	}
	h.ok(wsResp, res)
}

func (h *WsHandler) View(ctx context.Context, _ *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	v, err := h.game.Runtime.View(ctx)
	if err != nil {
		h.error(ctx, wsResp, "game.view", err)
		return
	}
	h.ok(wsResp, v)
}

func (h *WsHandler) ok(wsResp *ws.WsMsgResp, data any) {
	wsResp.Body.Code = transport.OK
	wsResp.Body.Msg = data
}

func (h *WsHandler) fail(wsResp *ws.WsMsgResp, code int, msg string) {
	wsResp.Body.Code = code
	wsResp.Body.Msg = msg
}

func (h *WsHandler) error(ctx context.Context, wsResp *ws.WsMsgResp, action string, err error) {
	code, msg := h.game.HandleError(ctx, action, err)
	h.fail(wsResp, code, msg)
}
