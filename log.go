package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/shiena/ansicolor"
)

var log = logrus.New()

// InitLog 初始化日志
func InitLog() {
	logIO := make([]io.Writer, 0)
	if conf.Output.LogDir != "" {
		os.MkdirAll(conf.Output.LogDir, os.ModePerm)
		filename := filepath.Join(conf.Output.LogDir, time.Now().Format("2006-01-02.log"))
		file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic("日志文件打开失败")
		}
		logIO = append(logIO, file)
	}
	if conf.Output.OutputTerminal || len(logIO) == 0 {
		logIO = append(logIO, os.Stdout)
	}
	setupLog(log, io.MultiWriter(logIO...), logLevel)
}

func setupLog(l *logrus.Logger, out io.Writer, level string) {
	l.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		ShowFullLevel:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	// then wrap the log output with it
	l.SetOutput(ansicolor.NewAnsiColorWriter(out))

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetLevel(lvl)
	}
}
