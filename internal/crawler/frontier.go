package crawler

import "sync"

// frontierItem is one pending unit of work.
type frontierItem struct {
	url   string
	depth int
}

// frontier is the shared crawl state: the seen-set, the pending
// queue, the in-flight counter, and the shutdown flag. All access
// goes through its methods under one mutex; workers block on the
// condition variable while the queue is empty but work is still in
// flight (in-flight work can discover new URLs).
type frontier struct {
	mu   sync.Mutex
	cond *sync.Cond

	// seen holds every URL ever enqueued. It only grows: a URL in
	// seen is never dispatched again, which is the at-most-once
	// guarantee.
	seen map[string]bool

	// queue holds pending items in insertion order. Resume seeding
	// inserts shallow depths first; after that, discovered URLs are
	// appended, so strict breadth-first order is not maintained.
	queue []frontierItem

	// active counts dispatched items not yet marked done.
	active int

	// shuttingDown suppresses new dispatch once set. It never
	// interrupts in-flight work by itself.
	shuttingDown bool

	// limit caps total dispatches; 0 means unlimited.
	limit int

	// dispatched records every URL handed to a worker, in order.
	dispatched []string
}

func newFrontier(limit int) *frontier {
	f := &frontier{
		seen:  make(map[string]bool),
		limit: limit,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// markSeen records the URL in the seen-set and reports whether it was
// new. The caller only enqueues when this returns true.
func (f *frontier) markSeen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen[url] {
		return false
	}
	f.seen[url] = true
	return true
}

// push appends an item to the pending queue and wakes one waiting
// worker. The URL must already be marked seen.
func (f *frontier) push(url string, depth int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queue = append(f.queue, frontierItem{url: url, depth: depth})
	f.cond.Signal()
}

// next blocks until an item is available and returns it, or returns
// ok=false when the worker should exit: the frontier has drained
// (empty queue, nothing in flight), shutdown was requested, or the
// dispatch limit is reached. A successful next increments the active
// count; the worker must call done afterwards.
func (f *frontier) next() (item frontierItem, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		if f.shuttingDown {
			return frontierItem{}, false
		}
		if f.limit > 0 && len(f.dispatched) >= f.limit {
			return frontierItem{}, false
		}
		if len(f.queue) > 0 {
			break
		}
		if f.active == 0 {
			// Drained: nothing queued and nothing in flight that
			// could discover more.
			return frontierItem{}, false
		}
		f.cond.Wait()
	}

	item = f.queue[0]
	f.queue = f.queue[1:]
	f.active++
	f.dispatched = append(f.dispatched, item.url)
	return item, true
}

// done marks one unit of work finished and wakes all waiters so they
// can re-check the drain condition.
func (f *frontier) done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.active--
	f.cond.Broadcast()
}

// shutdown stops all future dispatch. In-flight work is unaffected;
// its cancellation is the context's job.
func (f *frontier) shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.shuttingDown = true
	f.cond.Broadcast()
}

// dispatchLog returns a copy of every dispatched URL in order.
func (f *frontier) dispatchLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.dispatched...)
}

// pendingCount returns the current queue length.
func (f *frontier) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.queue)
}
