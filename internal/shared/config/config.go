package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigRelPath 未指定路径时从当前目录向上查找。
const DefaultConfigRelPath = "configs/conf.yml"

// Load 读取配置到 out，并在文件变更时回调 onChange（可为 nil）。defaults 里的 key 只在文件没写时生效。
//
// 约定：
//  1. cfgName 非空（相对/绝对路径）时优先使用；
//  2. 否则从当前目录开始向上查找 configs/conf.yml。
func Load(cfgName string, out any, onChange func(), defaults ...Defaults) error {
	path, err := Resolve(cfgName)
	if err != nil {
		return err
	}
	return load(path, out, onChange, defaults)
}

// Resolve 把 cfgName 解析成绝对路径。
func Resolve(cfgName string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			return cfgName, nil
		}
		return filepath.Join(curDir, cfgName), nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, DefaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{StartDir: startDir}
		}
		dir = parent
	}
}

type NotFoundError struct {
	StartDir string
}

func (e *NotFoundError) Error() string {
	return "config file not exist, searched " + DefaultConfigRelPath + " from: " + e.StartDir
}
