package serverconfig

import "time"

type Config struct {
	Game       GameConfig       `yaml:"game" mapstructure:"game"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

type GameConfig struct {
	OriginLat        float64       `yaml:"origin_lat" mapstructure:"origin_lat"`
	OriginLng        float64       `yaml:"origin_lng" mapstructure:"origin_lng"`
	TileWidth        float64       `yaml:"tile_width" mapstructure:"tile_width"` // 度
	VisibilityRadius int           `yaml:"visibility_radius" mapstructure:"visibility_radius"`
	SpawnProbability float64       `yaml:"spawn_probability" mapstructure:"spawn_probability"`
	AskTimeout       time.Duration `yaml:"ask_timeout" mapstructure:"ask_timeout"`
}

// StoreConfig 选择会话存档的 kv 后端：bolt / mongodb / mysql / postgres / memory。
type StoreConfig struct {
	Driver   string         `yaml:"driver" mapstructure:"driver"`
	Bolt     BoltConfig     `yaml:"bolt" mapstructure:"bolt"`
	MongoDB  MongoDBConfig  `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL    MySQLConfig    `yaml:"mysql" mapstructure:"mysql"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
}

type BoltConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	Bucket   string `yaml:"bucket" mapstructure:"bucket"`
	TimeoutS int    `yaml:"timeout_s" mapstructure:"timeout_s"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	Collection      string `yaml:"collection" mapstructure:"collection"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type PostgresConfig struct {
	DSN     string `yaml:"dsn" mapstructure:"dsn"`
	MaxIdle int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
