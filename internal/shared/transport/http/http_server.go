package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"GeoCoin/internal/shared/transport/http/middleware"
	"GeoCoin/modules/kit/logx"
)

type Server struct {
	engine *gin.Engine
	srv    *nethttp.Server
}

// NewHttpServer engine 为空时新建一个带 Recovery 的。
func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger) *Server {
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	engine.Use(middleware.Cors())
	engine.Use(middleware.AccessLog(logger))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		engine: engine,
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// 不设 WriteTimeout：/ws/geo 是长连接
			IdleTimeout: 60 * time.Second,
		},
	}
}

// Start 阻塞；Shutdown 之后返回 http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Group() *gin.RouterGroup {
	return &s.engine.RouterGroup
}

// Registrar 往 HTTP 服务上挂路由的模块。
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}
