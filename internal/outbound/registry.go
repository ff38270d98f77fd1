package outbound

import (
	"sync"
	"sync/atomic"

	"github.com/mxdserver/mxd/internal/wire"
)

// ConnectionID uniquely identifies one connection's outbound handle. Ids
// are allocated monotonically and never reused.
type ConnectionID uint64

// Priority selects which of a handle's two queues a pushed transaction is
// placed on.
type Priority int

const (
	Low Priority = iota
	High
)

// queueCapacity bounds each handle's per-priority channel.
const queueCapacity = 64

// Target names a push destination: either the connection that issued the
// current request, or an explicit connection id.
type Target struct {
	current bool
	id      ConnectionID
}

// CurrentTarget addresses the connection handling the in-flight request.
func CurrentTarget() Target { return Target{current: true} }

// ConnectionTarget addresses a specific, possibly different, connection.
func ConnectionTarget(id ConnectionID) Target { return Target{id: id} }

// Handle is the push endpoint owned by one connection's outbound wrapper.
// It is registered in the Registry for the connection's lifetime and
// removed when the wrapper is detached (the Go analogue of a Drop).
type Handle struct {
	id     ConnectionID
	high   chan wire.Transaction
	low    chan wire.Transaction
	closed atomic.Bool
}

func newHandle(id ConnectionID) *Handle {
	return &Handle{
		id:   id,
		high: make(chan wire.Transaction, queueCapacity),
		low:  make(chan wire.Transaction, queueCapacity),
	}
}

// ID returns the handle's connection id.
func (h *Handle) ID() ConnectionID { return h.id }

// High returns the channel carrying high-priority pushes for this handle;
// the connection's outbound driver drains it.
func (h *Handle) High() <-chan wire.Transaction { return h.high }

// Low returns the channel carrying low-priority pushes.
func (h *Handle) Low() <-chan wire.Transaction { return h.low }

func (h *Handle) enqueue(tx wire.Transaction, priority Priority) error {
	if h.closed.Load() {
		return newError(ErrQueueClosed)
	}
	ch := h.low
	if priority == High {
		ch = h.high
	}
	select {
	case ch <- tx:
		return nil
	default:
		return newError(ErrQueueFull)
	}
}

// Registry is the process-level map from ConnectionID to push handle.
type Registry struct {
	mu      sync.RWMutex
	handles map[ConnectionID]*Handle
	nextID  atomic.Uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[ConnectionID]*Handle)}
}

// Attach allocates the next ConnectionID and registers a push handle for
// it. Call Detach when the connection's outbound wrapper goes away.
func (r *Registry) Attach() *Handle {
	id := ConnectionID(r.nextID.Add(1))
	h := newHandle(id)
	r.mu.Lock()
	r.handles[id] = h
	r.mu.Unlock()
	return h
}

// Detach removes a handle from the registry and marks it closed so any
// push racing the detach observes QueueClosed rather than silently
// succeeding.
func (r *Registry) Detach(id ConnectionID) {
	r.mu.Lock()
	h, ok := r.handles[id]
	delete(r.handles, id)
	r.mu.Unlock()
	if ok {
		h.closed.Store(true)
	}
}

// Push delivers transaction to target's handle at the given priority.
// current, when target is CurrentTarget(), is the calling connection's own
// id.
func (r *Registry) Push(target Target, current ConnectionID, tx wire.Transaction, priority Priority) error {
	id := current
	if !target.current {
		id = target.id
	}
	r.mu.RLock()
	h, ok := r.handles[id]
	r.mu.RUnlock()
	if !ok {
		return newError(ErrTargetUnavailable)
	}
	return h.enqueue(tx, priority)
}

// Broadcast delivers transaction to every currently-registered handle at
// the given priority, best-effort: a handle whose queue is full or closed
// is skipped rather than aborting the whole broadcast. It fails with
// TargetUnavailable only when the registry is empty.
func (r *Registry) Broadcast(tx wire.Transaction, priority Priority) error {
	r.mu.RLock()
	handles := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		handles = append(handles, h)
	}
	r.mu.RUnlock()

	if len(handles) == 0 {
		return newError(ErrTargetUnavailable)
	}
	for _, h := range handles {
		_ = h.enqueue(tx, priority)
	}
	return nil
}

// Count returns the number of currently-registered handles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}
