package main

import (
	"bytes"
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// ViewOptions 视图参数
type ViewOptions struct {
	MinScale  float64
	MaxScale  float64
	InitScale float64
	Center    orb.Point
}

// App 组装引擎各部件, 所有状态只在事件循环上访问
type App struct {
	ID       string
	Viewport Size
	center   orb.Point
	proj     *Projection
	zoom     *ZoomController
	engine   *SyncEngine
	surface  *SVGSurface
	vector   *VectorLayer
	loop     *EventLoop
	last     Frame
}

func NewApp(id string, viewport Size, opts ViewOptions, tm *TileMap, loader ImageLoader) *App {
	surface := NewSVGSurface(viewport)
	proj := NewProjection()
	vector := NewVectorLayer(surface)
	raster := NewRasterLayer(surface, tm, loader)

	a := &App{
		ID:       id,
		Viewport: viewport,
		center:   opts.Center,
		proj:     proj,
		zoom:     NewZoomController(viewport, opts.MinScale, opts.MaxScale, opts.InitScale),
		engine:   NewSyncEngine(viewport, proj, raster, vector),
		surface:  surface,
		vector:   vector,
		loop:     NewEventLoop(0),
	}
	a.zoom.Subscribe(func(t Transform) {
		a.last = a.engine.OnTransformChanged(t)
	})
	return a
}

// Run 运行事件循环直到 ctx 结束
func (a *App) Run(ctx context.Context) {
	a.loop.Run(ctx, a.dispatch)
}

func (a *App) Stop() {
	a.loop.Stop()
}

func (a *App) dispatch(ev Event) {
	switch e := ev.(type) {
	case DatasetReady:
		if a.zoom.Seeded() {
			log.Warnf("dataset already bound, ignored")
			return
		}
		a.vector.SetData(e.Dataset)
		// 数据和投影就绪后才计算初始变换
		a.zoom.Seed(UnitProject(a.center))
	case GestureEvent:
		a.zoom.OnGesture(e.Gesture)
		if e.Reply != nil {
			e.Reply <- a.last
		}
	default:
		log.Warnf("unexpected event %T", ev)
	}
}

// Ready 发送数据集就绪事件
func (a *App) Ready(ctx context.Context, ds *Dataset) error {
	return a.loop.Emit(ctx, DatasetReady{Dataset: ds})
}

// Gesture 提交手势并等待本次同步完成
func (a *App) Gesture(ctx context.Context, g Gesture) (Frame, error) {
	reply := make(chan Frame, 1)
	if err := a.loop.Emit(ctx, GestureEvent{Gesture: g, Reply: reply}); err != nil {
		return Frame{}, err
	}
	select {
	case f := <-reply:
		return f, nil
	case <-a.loop.Done():
		return Frame{}, ErrLoopStopped
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	}
}

// Snapshot 当前画面的 svg
func (a *App) Snapshot(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	err := a.loop.Do(ctx, func() {
		_, _ = a.surface.WriteTo(&buf)
	})
	return buf.Bytes(), err
}

// VisibleTiles 当前可见瓦片
func (a *App) VisibleTiles(ctx context.Context) ([]maptile.Tile, error) {
	var tiles []maptile.Tile
	err := a.loop.Do(ctx, func() {
		tiles = a.engine.Tiles()
	})
	return tiles, err
}

// Transform 当前变换
func (a *App) Transform(ctx context.Context) (Transform, error) {
	var t Transform
	err := a.loop.Do(ctx, func() {
		t = a.zoom.Transform()
	})
	return t, err
}

// FeatureAt 屏幕点上的要素
func (a *App) FeatureAt(ctx context.Context, x, y float64) (*Feature, bool, error) {
	var (
		f  *Feature
		ok bool
	)
	err := a.loop.Do(ctx, func() {
		f, ok = a.vector.Hit(x, y)
	})
	return f, ok, err
}
