package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var conf *Conf

type Conf struct {
	App struct {
		Version string `toml:"version"`
		Title   string `toml:"title"`
	} `toml:"app"`
	Output struct {
		Directory      string `toml:"directory"`
		LogDir         string `toml:"logDir"`
		OutputTerminal bool   `toml:"outputTerminal"`
		Snapshot       string `toml:"snapshot"`
		TileDir        string `toml:"tileDir"`
		FailLog        string `toml:"failLog"`
	} `toml:"output"`
	Task struct {
		Workers int `toml:"workers"`
		Timeout int `toml:"timeout"`
		BufSize int `toml:"bufSize"`
	} `toml:"task"`
	View struct {
		Width     int     `toml:"width"`
		Height    int     `toml:"height"`
		MinScale  float64 `toml:"minScale"`
		MaxScale  float64 `toml:"maxScale"`
		InitScale float64 `toml:"initScale"`
		CenterLon float64 `toml:"centerLon"`
		CenterLat float64 `toml:"centerLat"`
	} `toml:"view"`
	Tm struct {
		Name       string `toml:"name"`
		Format     string `toml:"format"`
		URL        string `toml:"url"`
		Subdomains string `toml:"subdomains"`
	} `toml:"tm"`
	Dataset struct {
		Geojson      string `toml:"geojson"`
		MagnitudeKey string `toml:"magnitudeKey"`
	} `toml:"dataset"`
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Redis struct {
		Addr string `toml:"addr"`
	} `toml:"redis"`
	Gestures []Gesture `toml:"gestures"`
}

// InitConf 初始化配置
func InitConf(cfgFile string) {
	if cfgFile == "" {
		cfgFile = "conf.toml"
	}
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Printf("config file(%s) not exist", cfgFile)
		os.Exit(1)
	}
	c, err := loadConf(cfgFile)
	if err != nil {
		fmt.Printf("config file(%s) parse error, details: %s", cfgFile, err)
		os.Exit(1)
	}
	conf = c
}

// loadConf .env 中的变量先行加载, 可通过环境变量覆盖配置项
func loadConf(cfgFile string) (*Conf, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(cfgFile)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // read in environment variables that match
	if err := v.ReadInConfig(); err != nil {
		log.Warnf("read config file(%s) error, details: %s", v.ConfigFileUsed(), err)
	}
	// 设置默认值
	v.SetDefault("app.version", "v 0.1.0")
	v.SetDefault("app.title", "Quake Map")
	v.SetDefault("output.directory", "output")
	v.SetDefault("output.outputTerminal", true)
	v.SetDefault("output.snapshot", "output/view.svg")
	v.SetDefault("task.workers", 4)
	v.SetDefault("task.timeout", 10)
	v.SetDefault("task.bufSize", 64)
	v.SetDefault("view.width", 960)
	v.SetDefault("view.height", 500)
	v.SetDefault("view.minScale", MinScale)
	v.SetDefault("view.maxScale", MaxScale)
	v.SetDefault("view.initScale", InitScale)
	v.SetDefault("view.centerLon", -119.66)
	v.SetDefault("view.centerLat", 37.414)
	v.SetDefault("tm.name", "voyager")
	v.SetDefault("tm.format", PNG)
	v.SetDefault("tm.url", DefaultTileURL)
	v.SetDefault("tm.subdomains", DefaultSubdomains)
	v.SetDefault("dataset.geojson", "data/earthquakes_4326_cali.geojson")
	v.SetDefault("dataset.magnitudeKey", DefaultMagnitudeKey)
	v.SetDefault("server.addr", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("output.failLog", "")

	var c Conf
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
