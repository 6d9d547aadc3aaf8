package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay 文件变化后等待的时间，编辑器保存时常触发多次事件
const DefaultReloadDelay = 100 * time.Millisecond

// ScriptWatcher 监视脚本文件，文件被保存后把新内容投递给游戏循环
//
// 监视的是脚本所在目录而不是文件本身：很多编辑器保存时先写临时文件再重命名，
// 直接监视文件会在第一次保存后失效。
//
// 内容通过容量为 1 的通道投递，游戏循环来不及读取时只保留最新一次的内容。
type ScriptWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	delay   time.Duration

	changes chan string
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewScriptWatcher 开始监视脚本文件
//
// 参数：
//   - path: 脚本文件路径
//   - delay: 合并连续事件的等待时间，<= 0 时使用 DefaultReloadDelay
//
// 返回：
//   - *ScriptWatcher: 监视器，使用完毕后必须调用 Close
//   - error: 如果无法创建监视器或目录不存在返回错误
func NewScriptWatcher(path string, delay time.Duration) (*ScriptWatcher, error) {
	if delay <= 0 {
		delay = DefaultReloadDelay
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve script path %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	sw := &ScriptWatcher{
		path:    abs,
		watcher: watcher,
		delay:   delay,
		changes: make(chan string, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}

	sw.wg.Add(1)
	go sw.run()

	log.Printf("[ScriptWatcher] Watching %s", abs)
	return sw, nil
}

// Changes 返回脚本新内容的通道
func (sw *ScriptWatcher) Changes() <-chan string {
	return sw.changes
}

// Errors 返回监视或读取失败的通道
func (sw *ScriptWatcher) Errors() <-chan error {
	return sw.errors
}

// Poll 非阻塞地取出最新的脚本内容，供游戏循环每帧调用
func (sw *ScriptWatcher) Poll() (string, bool) {
	select {
	case text := <-sw.changes:
		return text, true
	default:
		return "", false
	}
}

// Close 停止监视，可重复调用
func (sw *ScriptWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.done)
		err = sw.watcher.Close()
		sw.wg.Wait()
	})
	return err
}

func (sw *ScriptWatcher) run() {
	defer sw.wg.Done()

	timer := time.NewTimer(sw.delay)
	timer.Stop()

	for {
		select {
		case <-sw.done:
			timer.Stop()
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(sw.delay)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.report(err)

		case <-timer.C:
			data, err := os.ReadFile(sw.path)
			if err != nil {
				// 重命名保存的中间状态，等下一个事件
				sw.report(fmt.Errorf("failed to read script %s: %w", sw.path, err))
				continue
			}
			sw.deliver(string(data))
		}
	}
}

// deliver 用最新内容替换尚未被读取的旧内容
func (sw *ScriptWatcher) deliver(text string) {
	select {
	case <-sw.changes:
	default:
	}
	select {
	case sw.changes <- text:
	default:
	}
	log.Printf("[ScriptWatcher] Script changed: %s", sw.path)
}

func (sw *ScriptWatcher) report(err error) {
	log.Printf("[ScriptWatcher] Warning: %v", err)
	select {
	case sw.errors <- err:
	default:
	}
}
