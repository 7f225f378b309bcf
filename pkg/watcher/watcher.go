package watcher

import (
	"learnhub_backend/pkg/logger"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchDir 监听目录下文件变更，写入事件防抖1秒后调用 reload。
// 课程目录热更新用，阻塞运行，调用方自起 goroutine。
func WatchDir(dir string, reload func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if err := w.Add(absPath); err != nil {
		return err
	}

	var mu sync.Mutex
	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				// 防抖处理
				mu.Lock()
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(1 * time.Second)
				mu.Unlock()
			}
		case <-timer.C:
			if err := reload(); err != nil {
				logger.Log.Error("Failed to reload catalog", zap.Error(err))
				continue
			}
			logger.Log.Info("Catalog reloaded", zap.String("dir", absPath))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Catalog watcher error", zap.Error(err))
		}
	}
}
