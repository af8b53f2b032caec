package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GeoCoin/internal/game/actor"
	"GeoCoin/internal/game/interfaces"
	"GeoCoin/internal/game/service"
	"GeoCoin/internal/session/infra/persistence"
	"GeoCoin/internal/shared/logs"
	"GeoCoin/internal/shared/serverconfig"
	transporthttp "GeoCoin/internal/shared/transport/http"
	"GeoCoin/internal/shared/transport/ws"
	"GeoCoin/internal/world/grid"
	"GeoCoin/modules/kit/logx"
)

func main() {
	confPath := flag.String("config", "", "配置文件路径，默认向上查找 configs/conf.yml")
	flag.Parse()

	if err := serverconfig.Load(*confPath, func(next serverconfig.Config) {
		logs.SetLevel(next.Log.Level)
		logs.Info("log level reloaded", zap.String("level", next.Log.Level))
	}); err != nil {
		panic(err)
	}
	conf := serverconfig.Conf
	if err := logs.Init("game", conf.Log); err != nil {
		panic(err)
	}
	defer func() { _ = logs.Sync() }()
	logs.Info("conf", zap.Any("game", conf.Game), zap.String("store", conf.Store.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseLogger := logx.NewZapLogger(logs.Logger())

	store, err := persistence.Open(ctx, conf.Store, logs.Logger())
	if err != nil {
		logs.Fatal("open session store failed", zap.String("driver", conf.Store.Driver), zap.Error(err))
	}

	game, err := service.NewGame(service.Options{
		Origin:           grid.LatLng{Lat: conf.Game.OriginLat, Lng: conf.Game.OriginLng},
		TileWidth:        conf.Game.TileWidth,
		VisibilityRadius: conf.Game.VisibilityRadius,
		SpawnProbability: conf.Game.SpawnProbability,
	}, store, baseLogger.Named("game"))
	if err != nil {
		logs.Fatal("create game failed", zap.Error(err))
	}
	runtime := actor.NewRuntime(game, baseLogger.Named("actor"), conf.Game.AskTimeout)

	host := conf.HTTPServer.Host
	if host == "" {
		host = "127.0.0.1"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.HTTPServer.Port)

	gameModule := interfaces.New(runtime, baseLogger)
	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)
	for _, m := range []transporthttp.Registrar{gameModule} {
		m.HttpRegister(httpServer.Group())
	}
	wsRouter := ws.NewRouter(baseLogger)
	for _, m := range []ws.Registrar{gameModule} {
		m.WsRegister(wsRouter)
	}
	httpServer.Engine().GET("/ws/geo", gin.WrapH(ws.NewServer(wsRouter, baseLogger)))

	errCh := make(chan error, 1)
	go func() {
		logs.Info("game http server started", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("game http server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	// 先停 actor（处理完已接收的消息），再关存储
	runtime.Shutdown()
	if err := store.Close(shutdownCtx); err != nil {
		logs.Error("close session store failed", zap.Error(err))
	}
}
