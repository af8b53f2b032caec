package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// DecodeHook 让配置里可以写 "3s" 这样的时长和逗号分隔的列表。
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Defaults 按 "段.字段" 注册的默认值。只有文件里没写的 key 才会取默认值，
// 显式写成 0 的字段保持 0。
type Defaults map[string]any

func newViper(configPath string, defaults []Defaults) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	for _, d := range defaults {
		for key, value := range d {
			v.SetDefault(key, value)
		}
	}
	return v
}

func load(configPath string, out any, onChange func(), defaults []Defaults) error {
	if !fileExist(configPath) {
		return fmt.Errorf("config file not exist, configPath=%v", configPath)
	}

	v := newViper(configPath, defaults)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", configPath, err)
	}
	if err := v.Unmarshal(out, viper.DecodeHook(DecodeHook())); err != nil {
		return fmt.Errorf("unmarshal config %s: %w", configPath, err)
	}

	if onChange != nil {
		// 变更回调串行执行；out 只在启动时写一次，变更后由回调自己决定读什么
		var mu sync.Mutex
		v.OnConfigChange(func(fsnotify.Event) {
			mu.Lock()
			defer mu.Unlock()
			onChange()
		})
		v.WatchConfig()
	}
	return nil
}

// Reload 重新读取文件到 out，供 onChange 回调使用。
func Reload(configPath string, out any, defaults ...Defaults) error {
	v := newViper(configPath, defaults)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(out, viper.DecodeHook(DecodeHook()))
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
