package serverconfig

import (
	"fmt"
	"math"
	"time"

	"GeoCoin/internal/shared/config"
)

// 默认值：Merrill Classroom 为原点，格宽 1e-4 度，可见半径 8 格，出生概率 0.1。
const (
	DefaultOriginLat        = 36.9995
	DefaultOriginLng        = -122.0533
	DefaultTileWidth        = 1e-4
	DefaultVisibilityRadius = 8
	DefaultSpawnProbability = 0.1
	DefaultAskTimeout       = 3 * time.Second
	DefaultStoreDriver      = "bolt"
)

var Conf Config

// defaults 只填补文件里没写的 key；显式的 0（原点、半径、出生概率）照原样保留。
func defaults() config.Defaults {
	return config.Defaults{
		"game.origin_lat":          DefaultOriginLat,
		"game.origin_lng":          DefaultOriginLng,
		"game.tile_width":          DefaultTileWidth,
		"game.visibility_radius":   DefaultVisibilityRadius,
		"game.spawn_probability":   DefaultSpawnProbability,
		"game.ask_timeout":         DefaultAskTimeout,
		"store.driver":             DefaultStoreDriver,
		"store.bolt.path":          "data/geocoin.db",
		"store.bolt.bucket":        "session",
		"store.mongodb.database":   "geocoin",
		"store.mongodb.collection": "session_kv",
		"httpserver.host":          "127.0.0.1",
		"httpserver.port":          8080,
		"log.level":                "info",
	}
}

// Load 读取配置；path 为空时向上查找 configs/conf.yml。onChange 在文件变更后拿到新配置，
// 变更后的配置不合法时忽略这次变更。
func Load(path string, onChange func(Config)) error {
	resolved, err := config.Resolve(path)
	if err != nil {
		return err
	}
	var watch func()
	if onChange != nil {
		watch = func() {
			var next Config
			if err := config.Reload(resolved, &next, defaults()); err != nil {
				return
			}
			if err := next.Validate(); err != nil {
				return
			}
			onChange(next)
		}
	}
	var c Config
	if err := config.Load(resolved, &c, watch, defaults()); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", resolved, err)
	}
	Conf = c
	return nil
}

// Default 不读文件时使用的完整默认配置。
func Default() Config {
	return Config{
		Game: GameConfig{
			OriginLat:        DefaultOriginLat,
			OriginLng:        DefaultOriginLng,
			TileWidth:        DefaultTileWidth,
			VisibilityRadius: DefaultVisibilityRadius,
			SpawnProbability: DefaultSpawnProbability,
			AskTimeout:       DefaultAskTimeout,
		},
		Store: StoreConfig{
			Driver:  DefaultStoreDriver,
			Bolt:    BoltConfig{Path: "data/geocoin.db", Bucket: "session"},
			MongoDB: MongoDBConfig{Database: "geocoin", Collection: "session_kv"},
		},
		HTTPServer: HTTPServerConfig{Host: "127.0.0.1", Port: 8080},
		Log:        LogConfig{Level: "info"},
	}
}

// Validate 只拒绝无法运行的值；原点 (0,0)、半径 0、出生概率 0 都是合法配置。
func (c *Config) Validate() error {
	g := c.Game
	if math.IsNaN(g.TileWidth) || g.TileWidth <= 0 {
		return fmt.Errorf("game.tile_width must be > 0, got %v", g.TileWidth)
	}
	if g.VisibilityRadius < 0 {
		return fmt.Errorf("game.visibility_radius must be >= 0, got %d", g.VisibilityRadius)
	}
	if math.IsNaN(g.SpawnProbability) || g.SpawnProbability < 0 || g.SpawnProbability > 1 {
		return fmt.Errorf("game.spawn_probability must be in [0,1], got %v", g.SpawnProbability)
	}
	if g.AskTimeout <= 0 {
		return fmt.Errorf("game.ask_timeout must be > 0, got %v", g.AskTimeout)
	}
	if c.Store.Driver == "" {
		return fmt.Errorf("store.driver is empty")
	}
	return nil
}
