package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEventLoopOrder(t *testing.T) {
	el := NewEventLoop(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []int
	go el.Run(ctx, func(ev Event) {
		got = append(got, ev.(int))
	})

	for i := 0; i < 100; i++ {
		if err := el.Emit(ctx, i); err != nil {
			t.Fatalf("emit %d: %v", i, err)
		}
	}
	// Do 在之前的事件全部处理完之后执行
	var n int
	if err := el.Do(ctx, func() { n = len(got) }); err != nil {
		t.Fatalf("do: %v", err)
	}
	if n != 100 {
		t.Fatalf("expected 100 events before query, got %d", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("event %d out of order: %d", i, v)
		}
	}
}

func TestEventLoopStop(t *testing.T) {
	el := NewEventLoop(1)
	go el.Run(context.Background(), func(Event) {})
	el.Stop()

	select {
	case <-el.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit")
	}
	if err := el.Emit(context.Background(), 1); !errors.Is(err, ErrLoopStopped) {
		t.Fatalf("emit after stop: %v", err)
	}
	if err := el.Do(context.Background(), func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Fatalf("do after stop: %v", err)
	}
}

func TestEventLoopEmitHonorsContext(t *testing.T) {
	el := NewEventLoop(1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// 没有消费者, 缓冲满后 Emit 等待直到 ctx 结束
	if err := el.Emit(ctx, 1); err != nil {
		t.Fatalf("first emit: %v", err)
	}
	if err := el.Emit(ctx, 2); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
