package notify

import (
	"context"
	"log"
	"time"
)

type task struct {
	name string
	fn   func(context.Context) error
}

// Dispatcher runs post-commit side effects on a background worker. Enqueued
// tasks are best-effort: failures are logged and never reach the request that
// produced them. A full queue drops the task rather than block a response.
type Dispatcher struct {
	tasks   chan task
	done    chan struct{}
	timeout time.Duration
}

func NewDispatcher(bufferSize int) *Dispatcher {
	d := &Dispatcher{
		tasks:   make(chan task, bufferSize),
		done:    make(chan struct{}),
		timeout: 10 * time.Second,
	}

	go d.worker()

	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for t := range d.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := t.fn(ctx); err != nil {
			log.Printf("notify: %s failed: %v", t.name, err)
		}
		cancel()
	}
}

// Enqueue schedules a side effect. Never blocks.
func (d *Dispatcher) Enqueue(name string, fn func(context.Context) error) {
	select {
	case d.tasks <- task{name: name, fn: fn}:
	default:
		log.Printf("notify: queue full, dropping %s", name)
	}
}

// Close stops accepting tasks and waits for in-flight ones to finish.
func (d *Dispatcher) Close() {
	close(d.tasks)
	<-d.done
}
