package main

import (
	"context"
	"errors"
)

// ErrLoopStopped 事件循环已停止
var ErrLoopStopped = errors.New("event loop stopped")

type Event interface{}

// DatasetReady 数据集加载完成, 只发送一次
type DatasetReady struct {
	Dataset *Dataset
}

// GestureEvent 手势事件, Reply 非空时回传本次同步结果
type GestureEvent struct {
	Gesture Gesture
	Reply   chan<- Frame
}

// queryEvent 在事件循环上执行 fn
type queryEvent struct {
	fn   func()
	done chan struct{}
}

type EventDispatcher func(Event)

// EventLoop 单消费者事件循环, 事件按到达顺序逐个执行完毕, 不丢弃不合并
type EventLoop struct {
	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	exited chan struct{}
}

func NewEventLoop(bufferSize int) *EventLoop {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	el := &EventLoop{
		events: make(chan Event, bufferSize),
		exited: make(chan struct{}),
	}
	el.ctx, el.cancel = context.WithCancel(context.Background())
	return el
}

// Emit 阻塞直到事件入队
func (el *EventLoop) Emit(ctx context.Context, ev Event) error {
	if el.ctx.Err() != nil {
		return ErrLoopStopped
	}
	select {
	case el.events <- ev:
		return nil
	case <-el.ctx.Done():
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do 在事件循环上执行 fn 并等待其完成
func (el *EventLoop) Do(ctx context.Context, fn func()) error {
	q := queryEvent{fn: fn, done: make(chan struct{})}
	if err := el.Emit(ctx, q); err != nil {
		return err
	}
	select {
	case <-q.done:
		return nil
	case <-el.exited:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run 在当前 goroutine 上消费事件, ctx 结束或 Stop 后返回
func (el *EventLoop) Run(ctx context.Context, dispatch EventDispatcher) {
	defer close(el.exited)
	defer el.cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-el.ctx.Done():
			return
		case ev := <-el.events:
			if q, ok := ev.(queryEvent); ok {
				q.fn()
				close(q.done)
				continue
			}
			dispatch(ev)
		}
	}
}

// Stop 停止事件循环
func (el *EventLoop) Stop() {
	el.cancel()
}

// Done 事件循环退出后关闭
func (el *EventLoop) Done() <-chan struct{} {
	return el.exited
}
