package edunet

import "sync"

// SerialDispatcher runs posted functions one at a time, in order, on a single
// goroutine. Post never blocks, so code already running on the dispatcher may
// post more work.
type SerialDispatcher struct {
	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewSerialDispatcher() *SerialDispatcher {
	d := &SerialDispatcher{
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go d.loop()
	return d
}

// Post queues fn. Functions posted after Close are dropped.
func (d *SerialDispatcher) Post(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Flush waits until everything posted before the call has run. Must not be
// called from the dispatcher goroutine.
func (d *SerialDispatcher) Flush() {
	done := make(chan struct{})
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, func() { close(done) })
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	select {
	case <-done:
	case <-d.stopped:
	}
}

// Close runs what is already queued and stops the goroutine
func (d *SerialDispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()
		close(d.quit)
	})
	<-d.stopped
}

func (d *SerialDispatcher) drain() int {
	d.mu.Lock()
	pending := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

func (d *SerialDispatcher) loop() {
	defer close(d.stopped)
	for {
		if d.drain() > 0 {
			continue
		}
		select {
		case <-d.wake:
		case <-d.quit:
			for d.drain() > 0 {
			}
			return
		}
	}
}
