package main

import (
	"testing"

	"github.com/paulmach/orb/maptile"
)

func TestGetTileURL(t *testing.T) {
	tm := &TileMap{URL: DefaultTileURL, Subdomains: DefaultSubdomains}
	cases := []struct {
		tile maptile.Tile
		want string
	}{
		{maptile.New(5, 7, 10), "http://b.basemaps.example.com/rastertiles/voyager/10/5/7.png"},
		{maptile.New(0, 0, 0), "http://a.basemaps.example.com/rastertiles/voyager/0/0/0.png"},
		{maptile.New(3, 2, 6), "http://c.basemaps.example.com/rastertiles/voyager/6/3/2.png"},
		{maptile.New(1234, 5678, 13), "http://c.basemaps.example.com/rastertiles/voyager/13/1234/5678.png"},
	}
	for _, c := range cases {
		if got := tm.GetTileURL(c.tile); got != c.want {
			t.Errorf("GetTileURL(%v) = %q, want %q", c.tile, got, c.want)
		}
	}
}

func TestGetTileURLDefaultSubdomains(t *testing.T) {
	tm := &TileMap{URL: "http://{s}.example.com/{z}/{x}/{y}"}
	if got := tm.GetTileURL(maptile.New(1, 4, 3)); got != "http://b.example.com/3/1/4" {
		t.Fatalf("got %q", got)
	}
}
