package http

import (
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"GeoCoin/internal/game/interfaces/handler"
	"GeoCoin/internal/game/interfaces/handler/dto"
	"GeoCoin/internal/game/service"
	"GeoCoin/internal/shared/transport"
)

type HttpHandler struct {
	game *handler.Game
}

func NewHttpHandler(g *handler.Game) *HttpHandler {
	return &HttpHandler{game: g}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	api := group.Group("/api")
	api.GET("/state", h.State)
	api.POST("/move/:direction", h.Move)
	api.POST("/locate", h.Locate)
	api.POST("/pits/:i/:j/poke", h.Poke)
	api.POST("/pits/:i/:j/deposit", h.Deposit)
	api.POST("/reset", h.Reset)
}

func (h *HttpHandler) State(c *gin.Context) {
	ctx := c.Request.Context()
	v, err := h.game.Runtime.View(ctx)
	if err != nil {
		h.error(ctx, c, "game.view", err, nil)
		return
	}
	h.ok(c, v)
}

func (h *HttpHandler) Move(c *gin.Context) {
	ctx := c.Request.Context()
	if _, ok := service.ParseDirection(c.Param("direction")); !ok {
		h.fail(c, transport.InvalidParam, "方向有误")
		return
	}
	res, err := h.game.Runtime.Move(ctx, c.Param("direction"))
	h.reply(ctx, c, "game.move", res, err)
}

func (h *HttpHandler) Locate(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.LocateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	if err := handler.ValidLatLng(*req.Lat, *req.Lng); err != nil {
		h.fail(c, transport.InvalidParam, err.Error())
		return
	}
	res, err := h.game.Runtime.Locate(ctx, *req.Lat, *req.Lng)
	h.reply(ctx, c, "game.locate", res, err)
}

func (h *HttpHandler) Poke(c *gin.Context) {
	ctx := c.Request.Context()
	i, j, ok := cellParams(c)
	if !ok {
		h.fail(c, transport.InvalidParam, "格子坐标有误")
		return
	}
	res, err := h.game.Runtime.Poke(ctx, i, j)
	h.reply(ctx, c, "game.poke", res, err)
}

func (h *HttpHandler) Deposit(c *gin.Context) {
	ctx := c.Request.Context()
	i, j, ok := cellParams(c)
	if !ok {
		h.fail(c, transport.InvalidParam, "格子坐标有误")
		return
	}
	res, err := h.game.Runtime.Deposit(ctx, i, j)
	h.reply(ctx, c, "game.deposit", res, err)
}

func (h *HttpHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.game.Runtime.Reset(ctx)
	h.reply(ctx, c, "game.reset", res, err)
}

func cellParams(c *gin.Context) (int, int, bool) {
	i, err := strconv.Atoi(c.Param("i"))
	if err != nil {
		return 0, 0, false
	}
	j, err := strconv.Atoi(c.Param("j"))
	if err != nil {
		return 0, 0, false
	}
	return i, j, true
}

// reply 业务拒绝（Changed=false）也是 code=OK，原因在 data.reason 里。
func (h *HttpHandler) reply(ctx context.Context, c *gin.Context, action string, res service.Result, err error) {
	if err != nil {
		h.error(ctx, c, action, err, res)
		return
	}
	if !res.Changed {
		transport.SetErrorReason(ctx, res.Reason)
	}
	h.ok(c, res)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, action string, err error, data any) {
	code, msg := h.game.HandleError(ctx, action, err)
	if res, ok := data.(service.Result); ok && res.Changed {
		c.JSON(nethttp.StatusOK, dto.ErrorWithData(code, msg, res))
		return
	}
	h.fail(c, code, msg)
}
