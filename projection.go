package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const tau = 2 * math.Pi

// Projection 经纬度到像素的墨卡托投影, scale/translate 可变
type Projection struct {
	scale     float64
	translate orb.Point
}

// NewProjection 初始投影: scale 1/tau, translate [0,0], 整个世界宽 1 像素
func NewProjection() *Projection {
	return &Projection{scale: 1 / tau}
}

// SetScaleTranslate 更新投影参数
func (p *Projection) SetScaleTranslate(scale float64, translate orb.Point) {
	p.scale = scale
	p.translate = translate
}

func (p *Projection) Scale() float64 {
	return p.scale
}

func (p *Projection) Translate() orb.Point {
	return p.translate
}

// Project 经纬度 -> 像素
func (p *Projection) Project(ll orb.Point) orb.Point {
	m := mercator(ll)
	return orb.Point{
		m[0]*p.scale + p.translate[0],
		m[1]*p.scale + p.translate[1],
	}
}

// UnitProject 使用初始参数投影, 用于计算初始视图中心
func UnitProject(ll orb.Point) orb.Point {
	return NewProjection().Project(ll)
}

// mercator 返回以弧度为单位的墨卡托坐标, y 轴向下
func mercator(ll orb.Point) orb.Point {
	m := project.Point(ll, project.WGS84.ToMercator)
	return orb.Point{m[0] / orb.EarthRadius, -m[1] / orb.EarthRadius}
}
