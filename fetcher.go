package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/paulmach/orb/maptile"
)

type tileState int

const (
	tilePending tileState = iota
	tileLoaded
	tileFailed
)

type tileImage struct {
	state tileState
	data  []byte
}

// TileFetcher 瓦片图片加载器, 加载在后台进行, 调用方从不等待
type TileFetcher struct {
	TileMap *TileMap
	client  *http.Client
	tileDir string
	ledger  FailLedger
	workers chan struct{}
	tileWG  sync.WaitGroup
	mu      sync.Mutex
	images  map[maptile.Tile]*tileImage
}

// NewTileFetcher workers 限制同时进行的请求数
func NewTileFetcher(tm *TileMap, workers int, timeout time.Duration, tileDir string, ledger FailLedger) *TileFetcher {
	if workers <= 0 {
		workers = 4
	}
	if ledger == nil {
		ledger = nopLedger{}
	}
	return &TileFetcher{
		TileMap: tm,
		client:  &http.Client{Timeout: timeout},
		tileDir: tileDir,
		ledger:  ledger,
		workers: make(chan struct{}, workers),
		images:  make(map[maptile.Tile]*tileImage),
	}
}

// Fetch 已在加载或已加载的瓦片不重复请求
func (f *TileFetcher) Fetch(t maptile.Tile) {
	f.mu.Lock()
	if _, ok := f.images[t]; ok {
		f.mu.Unlock()
		return
	}
	img := &tileImage{state: tilePending}
	f.images[t] = img
	f.mu.Unlock()

	f.tileWG.Add(1)
	go f.tileFetcher(t, img)
}

// Dispose 瓦片移出视图, 丢弃缓存的图片
func (f *TileFetcher) Dispose(t maptile.Tile) {
	f.mu.Lock()
	delete(f.images, t)
	f.mu.Unlock()
}

// Image 返回已加载的图片数据
func (f *TileFetcher) Image(t maptile.Tile) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	img, ok := f.images[t]
	if !ok || img.state != tileLoaded {
		return nil, false
	}
	return img.data, true
}

// Close 等待进行中的加载结束
func (f *TileFetcher) Close() {
	f.tileWG.Wait()
}

// tileFetcher 瓦片加载器
func (f *TileFetcher) tileFetcher(t maptile.Tile, img *tileImage) {
	start := time.Now()
	defer f.tileWG.Done()
	f.workers <- struct{}{}
	defer func() { <-f.workers }()

	// 等待期间已移出视图的瓦片不再请求
	if !f.current(t, img) {
		tileFetchTotal.WithLabelValues("skip").Inc()
		return
	}

	url := f.TileMap.GetTileURL(t)
	body, err := f.load(url)
	tileFetchDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		log.Debugf("fetch %s error, details: %s ~", url, err)
		tileFetchTotal.WithLabelValues("fail").Inc()
		f.settle(t, img, tileFailed, nil)
		f.ledger.Record(t, err.Error())
		return
	}
	tileFetchTotal.WithLabelValues("ok").Inc()
	if !f.settle(t, img, tileLoaded, body) {
		log.Debugf("tile %v disposed before load finished", t)
		return
	}
	if f.tileDir != "" {
		if err := f.saveToFiles(t, body); err != nil {
			log.Errorf("create %v tile file error ~ %s", t, err)
		}
	}
	log.Debugf("tile(z:%d, x:%d, y:%d), %dms , %.2f kb, %s ...", t.Z, t.X, t.Y, time.Since(start).Milliseconds(), float32(len(body))/1024.0, url)
}

func (f *TileFetcher) current(t maptile.Tile, img *tileImage) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.images[t] == img
}

// settle 瓦片仍在视图中时更新状态
func (f *TileFetcher) settle(t maptile.Tile, img *tileImage, state tileState, data []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.images[t] != img {
		return false
	}
	img.state = state
	img.data = data
	return true
}

var errEmptyTile = errors.New("nil tile")

func (f *TileFetcher) load(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resp %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errEmptyTile
	}
	return body, nil
}

func (f *TileFetcher) saveToFiles(t maptile.Tile, body []byte) error {
	dir := filepath.Join(f.tileDir, fmt.Sprintf(`%d`, t.Z), fmt.Sprintf(`%d`, t.X))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	format := f.TileMap.Format
	if format == "" {
		format = PNG
	}
	return os.WriteFile(filepath.Join(dir, fmt.Sprintf(`%d.%s`, t.Y, format)), body, 0644)
}
