package main

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb/maptile"
)

// DefaultTileURL 底图瓦片地址, {s} 由 y%3 决定
const DefaultTileURL = "http://{s}.basemaps.example.com/rastertiles/voyager/{z}/{x}/{y}.png"

// DefaultSubdomains 子域名集合
const DefaultSubdomains = "abc"

// Constants representing TileFormat types
const (
	PNG  = "png"
	JPG  = "jpg"
	WEBP = "webp"
)

// TileMap 瓦片地图类型
type TileMap struct {
	Name       string
	Format     string
	URL        string
	Subdomains string
}

// GetTileURL 获取瓦片URL
func (m *TileMap) GetTileURL(t maptile.Tile) string {
	url := strings.Replace(m.URL, "{s}", m.subdomain(t), -1)
	url = strings.Replace(url, "{x}", strconv.Itoa(int(t.X)), -1)
	url = strings.Replace(url, "{y}", strconv.Itoa(int(t.Y)), -1)
	url = strings.Replace(url, "{z}", strconv.Itoa(int(t.Z)), -1)
	return url
}

func (m *TileMap) subdomain(t maptile.Tile) string {
	s := m.Subdomains
	if s == "" {
		s = DefaultSubdomains
	}
	i := int(t.Y % uint32(len(s)))
	return s[i : i+1]
}
