package watch

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is a change to one watched path. Path is empty when the kernel queue
// overflowed and the changed paths are unknown.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Debouncer coalesces events per path into batches. A batch is handed to the
// flush callback once the window passed without new events, or as soon as
// maxBatch distinct paths are pending.
type Debouncer struct {
	window   time.Duration
	maxBatch int
	onFlush  func([]Event)

	mu      sync.Mutex
	pending map[string]fsnotify.Op
	timer   *time.Timer
	// gen invalidates timers armed before the latest Add.
	gen     uint64
	stopped bool
}

// NewDebouncer returns a debouncer calling onFlush with each batch, sorted by
// path. A maxBatch of zero disables the size limit.
func NewDebouncer(window time.Duration, maxBatch int, onFlush func([]Event)) *Debouncer {
	return &Debouncer{
		window:   window,
		maxBatch: maxBatch,
		onFlush:  onFlush,
		pending:  make(map[string]fsnotify.Op),
	}
}

// Add records an event and restarts the window. Operations on the same path
// are merged.
func (d *Debouncer) Add(event Event) {
	batch := d.add(event)
	d.deliver(batch)
}

func (d *Debouncer) add(event Event) []Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil
	}

	d.pending[event.Path] |= event.Op

	if d.maxBatch > 0 && len(d.pending) >= d.maxBatch {
		return d.takeLocked()
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.expire(gen) })

	return nil
}

func (d *Debouncer) expire(gen uint64) {
	d.mu.Lock()

	var batch []Event
	if !d.stopped && gen == d.gen {
		batch = d.takeLocked()
	}

	d.mu.Unlock()

	d.deliver(batch)
}

// takeLocked empties the pending set. d.mu must be held.
func (d *Debouncer) takeLocked() []Event {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.gen++

	batch := make([]Event, 0, len(d.pending))
	for path, op := range d.pending {
		batch = append(batch, Event{Path: path, Op: op})
	}

	clear(d.pending)

	slices.SortFunc(batch, func(a, b Event) int { return strings.Compare(a.Path, b.Path) })

	return batch
}

func (d *Debouncer) deliver(batch []Event) {
	if len(batch) > 0 && d.onFlush != nil {
		d.onFlush(batch)
	}
}

// Stop drops pending events. Add is a no-op afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.takeLocked()
}
