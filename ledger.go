package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/paulmach/orb/maptile"
)

// FailLedger 记录加载失败的瓦片, 只记录不重试
type FailLedger interface {
	Record(t maptile.Tile, reason string)
	Close() error
}

type nopLedger struct{}

func (nopLedger) Record(maptile.Tile, string) {}

func (nopLedger) Close() error {
	return nil
}

type failRecord struct {
	tile   maptile.Tile
	reason string
}

// FileLedger 追加写失败记录文件, 每行 "z-x-y reason"
type FileLedger struct {
	file     *os.File
	saveChan chan failRecord
	done     chan struct{}
	mu       sync.RWMutex
	isClose  bool
}

// NewFileLedger 打开(或创建)记录文件并启动写入任务
func NewFileLedger(path string, buf int) (*FileLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("fail ledger open error: %w", err)
	}
	l := &FileLedger{
		file:     file,
		saveChan: make(chan failRecord, buf),
		done:     make(chan struct{}),
	}
	go l.start()
	return l, nil
}

func (l *FileLedger) start() {
	defer close(l.done)
	for r := range l.saveChan {
		if _, err := fmt.Fprintf(l.file, "%d-%d-%d %s\n", r.tile.Z, r.tile.X, r.tile.Y, r.reason); err != nil {
			log.Warnf("fail ledger write error ~ %s", err)
		}
	}
}

// Record 关闭后的记录直接丢弃
func (l *FileLedger) Record(t maptile.Tile, reason string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.isClose {
		return
	}
	l.saveChan <- failRecord{tile: t, reason: reason}
}

// Close 写完队列中的记录后关闭文件
func (l *FileLedger) Close() error {
	l.mu.Lock()
	if l.isClose {
		l.mu.Unlock()
		return nil
	}
	l.isClose = true
	close(l.saveChan)
	l.mu.Unlock()

	<-l.done
	log.Infof("失败记录任务已安全退出")
	return l.file.Close()
}
