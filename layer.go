package main

import (
	"math"

	"github.com/paulmach/orb/maptile"
)

// Surface 渲染表面
type Surface interface {
	SetRasterTransform(lt LayerTransform)
	AddImage(key maptile.Tile, href string, x, y, size float64)
	RemoveImage(key maptile.Tile)
	DrawMarkers(markers []Marker)
}

// ImageLoader 瓦片图片加载, Fetch 不得阻塞
type ImageLoader interface {
	Fetch(key maptile.Tile)
	Dispose(key maptile.Tile)
}

// RasterLayer 瓦片图层
type RasterLayer struct {
	surface Surface
	tm      *TileMap
	loader  ImageLoader
}

func NewRasterLayer(surface Surface, tm *TileMap, loader ImageLoader) *RasterLayer {
	return &RasterLayer{surface: surface, tm: tm, loader: loader}
}

// Apply 只处理新增和移除, 保留的瓦片不做任何操作
func (r *RasterLayer) Apply(f Frame) {
	r.surface.SetRasterTransform(f.Layer)
	for _, t := range f.Removed {
		r.surface.RemoveImage(t)
		if r.loader != nil {
			r.loader.Dispose(t)
		}
	}
	for _, t := range f.Added {
		r.surface.AddImage(t, r.tm.GetTileURL(t), float64(t.X)*TileSize, float64(t.Y)*TileSize, TileSize)
		if r.loader != nil {
			r.loader.Fetch(t)
		}
	}
}

// Marker 屏幕坐标下的震级圆点
type Marker struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
}

// VectorLayer 矢量图层, 引用而不复制数据集中的要素
type VectorLayer struct {
	surface  Surface
	features []Feature
	radius   RadiusScale
	markers  []Marker
}

func NewVectorLayer(surface Surface) *VectorLayer {
	return &VectorLayer{surface: surface}
}

// SetData 绑定数据集
func (v *VectorLayer) SetData(ds *Dataset) {
	v.features = ds.Features
	v.radius = ds.Radius
	v.markers = make([]Marker, len(ds.Features))
}

// Render 重新投影所有要素, 半径不随缩放变化
func (v *VectorLayer) Render(p *Projection) {
	for i := range v.features {
		pt := p.Project(v.features[i].Point)
		v.markers[i] = Marker{
			Index: i,
			X:     pt[0],
			Y:     pt[1],
			R:     v.radius.Radius(v.features[i].Magnitude),
		}
	}
	v.surface.DrawMarkers(v.markers)
}

// Markers 最近一次渲染的结果
func (v *VectorLayer) Markers() []Marker {
	return v.markers
}

// Hit 返回包含屏幕点 (x,y) 的最上层要素
func (v *VectorLayer) Hit(x, y float64) (*Feature, bool) {
	for i := len(v.markers) - 1; i >= 0; i-- {
		m := v.markers[i]
		if math.Hypot(x-m.X, y-m.Y) <= m.R {
			return &v.features[m.Index], true
		}
	}
	return nil, false
}
