package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	gesturesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quakemap_gestures_total",
		Help: "Total gestures applied to the view transform",
	})
	framesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quakemap_frames_total",
		Help: "Total sync passes run by the engine",
	})
	tilesAddedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quakemap_tiles_added_total",
		Help: "Total tile images added to the raster layer",
	})
	tilesRemovedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quakemap_tiles_removed_total",
		Help: "Total tile images removed from the raster layer",
	})
	visibleTiles = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quakemap_visible_tiles",
		Help: "Number of tiles in the current visible set",
	})
	tileFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quakemap_tile_fetch_total",
		Help: "Tile image loads by result",
	}, []string{"result"})
	tileFetchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quakemap_tile_fetch_duration_ms",
		Help:    "Tile image load duration in milliseconds",
		Buckets: []float64{10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	})
)

func init() {
	prometheus.MustRegister(gesturesTotal)
	prometheus.MustRegister(framesTotal)
	prometheus.MustRegister(tilesAddedTotal)
	prometheus.MustRegister(tilesRemovedTotal)
	prometheus.MustRegister(visibleTiles)
	prometheus.MustRegister(tileFetchTotal)
	prometheus.MustRegister(tileFetchDurationMs)
}
