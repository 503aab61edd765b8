package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	hf         bool
	configPath string
	logLevel   string
	serveAddr  string
)

func InitFlag() {
	flag.BoolVar(&hf, "h", false, "this help")
	flag.StringVar(&configPath, "c", "./conf/conf.toml", "set config `file`")
	flag.StringVar(&logLevel, "l", "info", "set log level (default: info)")
	flag.StringVar(&serveAddr, "s", "", "serve http on `addr`, overrides server.addr")
	flag.Usage = usage
	flag.Parse()

	if hf {
		flag.Usage()
		os.Exit(0)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `quakemap version: quakemap/v0.1.0
Usage: quakemap [-h] [-c filename] [-l logLevel] [-s addr]
`)
	flag.PrintDefaults()
}
