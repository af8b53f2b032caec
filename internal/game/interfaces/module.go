package interfaces

import (
	"github.com/gin-gonic/gin"

	"GeoCoin/internal/game/interfaces/handler"
	"GeoCoin/internal/game/interfaces/handler/http"
	gamews "GeoCoin/internal/game/interfaces/handler/ws"
	transporthttp "GeoCoin/internal/shared/transport/http"
	"GeoCoin/internal/shared/transport/ws"
	"GeoCoin/modules/kit/logx"
)

// Module 本地控制面：HTTP 接口加 /ws/geo 定位推送。
type Module struct {
	wsHandler   *gamews.WsHandler
	httpHandler *http.HttpHandler
}

func New(rt handler.GameRuntime, l logx.Logger) *Module {
	g := handler.NewGame(rt, l)
	return &Module{
		wsHandler:   gamews.NewWsHandler(g),
		httpHandler: http.NewHttpHandler(g),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
