package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb/maptile"
)

func TestFileLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fail.log")
	l, err := NewFileLedger(path, 4)
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	l.Record(maptile.New(5, 7, 10), "resp 404")
	l.Record(maptile.New(1, 2, 3), "nil tile")
	if err := l.Close(); err != nil {
		t.Fatalf("close error: %v", err)
	}
	// 关闭后记录被丢弃, 重复关闭无副作用
	l.Record(maptile.New(0, 0, 0), "late")
	if err := l.Close(); err != nil {
		t.Fatalf("second close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{"10-5-7 resp 404", "3-1-2 nil tile"}
	if len(lines) != len(want) {
		t.Fatalf("got lines %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
