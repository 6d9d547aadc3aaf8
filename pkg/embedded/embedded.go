// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量声明在项目根目录（embed.go），由 main 通过 Init() 传入。
// 参数类型是 fs.FS，测试可以直接传入 fstest.MapFS。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotInitialized 在 Init() 之前访问资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	mu       sync.RWMutex
	assetsFS fs.FS
	dataFS   fs.FS
)

// Init 设置资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
//
// 参数：
//   - assets: 根目录下包含 "assets/" 的文件系统
//   - data: 根目录下包含 "data/" 的文件系统
func Init(assets, data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	assetsFS = assets
	dataFS = data
}

// Reset 清除已设置的文件系统，供测试使用
func Reset() {
	Init(nil, nil)
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return assetsFS != nil || dataFS != nil
}

// resolve 按路径前缀选择文件系统，并返回标准化后的路径
// 路径必须以 "assets/" 或 "data/" 开头
func resolve(path string) (fs.FS, string, error) {
	mu.RLock()
	assets, data := assetsFS, dataFS
	mu.RUnlock()

	if assets == nil && data == nil {
		return nil, "", ErrNotInitialized
	}

	// embed.FS 使用正斜杠，且不接受 "./" 前缀
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")

	var fsys fs.FS
	switch {
	case strings.HasPrefix(path, "assets/"):
		fsys = assets
	case strings.HasPrefix(path, "data/"):
		fsys = data
	default:
		return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
	}
	if fsys == nil {
		return nil, "", fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return fsys, path, nil
}

// Open 打开嵌入的文件
func Open(path string) (fs.File, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(name)
}

// ReadFile 读取嵌入文件的全部内容
func ReadFile(path string) ([]byte, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, name)
}

// Exists 检查文件是否存在于嵌入资源中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在嵌入资源中匹配文件，结果按字典序排列
func Glob(pattern string) ([]string, error) {
	fsys, name, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, name)
}
