package outbound

import (
	"testing"

	"github.com/mxdserver/mxd/internal/wire"
)

func sampleTx() wire.Transaction {
	return wire.Transaction{Header: wire.FrameHeader{Type: 1, ID: 1}}
}

func TestAttachAllocatesMonotonicIDs(t *testing.T) {
	r := NewRegistry()
	a := r.Attach()
	b := r.Attach()
	if a.ID() == b.ID() {
		t.Fatal("expected distinct connection ids")
	}
	if b.ID() <= a.ID() {
		t.Fatal("expected monotonically increasing ids")
	}
	if r.Count() != 2 {
		t.Fatalf("got count %d, want 2", r.Count())
	}
}

func TestPushToConnectionTarget(t *testing.T) {
	r := NewRegistry()
	h := r.Attach()
	if err := r.Push(ConnectionTarget(h.ID()), 0, sampleTx(), High); err != nil {
		t.Fatalf("Push: %v", err)
	}
	select {
	case <-h.High():
	default:
		t.Fatal("expected transaction on high-priority queue")
	}
}

func TestPushCurrentTarget(t *testing.T) {
	r := NewRegistry()
	h := r.Attach()
	if err := r.Push(CurrentTarget(), h.ID(), sampleTx(), Low); err != nil {
		t.Fatalf("Push: %v", err)
	}
	select {
	case <-h.Low():
	default:
		t.Fatal("expected transaction on low-priority queue")
	}
}

func TestPushUnknownTargetFails(t *testing.T) {
	r := NewRegistry()
	err := r.Push(ConnectionTarget(999), 0, sampleTx(), Low)
	if oe, ok := err.(*Error); !ok || oe.Code != ErrTargetUnavailable {
		t.Fatalf("got %v, want TargetUnavailable", err)
	}
}

func TestDetachMakesTargetUnavailable(t *testing.T) {
	r := NewRegistry()
	h := r.Attach()
	r.Detach(h.ID())
	err := r.Push(ConnectionTarget(h.ID()), 0, sampleTx(), Low)
	if oe, ok := err.(*Error); !ok || oe.Code != ErrTargetUnavailable {
		t.Fatalf("got %v, want TargetUnavailable after detach", err)
	}
}

func TestQueueFullAfterCapacityExceeded(t *testing.T) {
	r := NewRegistry()
	h := r.Attach()
	var lastErr error
	for i := 0; i < queueCapacity+1; i++ {
		lastErr = r.Push(ConnectionTarget(h.ID()), 0, sampleTx(), Low)
	}
	if oe, ok := lastErr.(*Error); !ok || oe.Code != ErrQueueFull {
		t.Fatalf("got %v, want QueueFull", lastErr)
	}
}

func TestBroadcastReachesAllHandles(t *testing.T) {
	r := NewRegistry()
	a := r.Attach()
	b := r.Attach()
	if err := r.Broadcast(sampleTx(), High); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	for _, h := range []*Handle{a, b} {
		select {
		case <-h.High():
		default:
			t.Fatalf("expected handle %d to receive broadcast", h.ID())
		}
	}
}

func TestBroadcastEmptyRegistryFails(t *testing.T) {
	r := NewRegistry()
	err := r.Broadcast(sampleTx(), Low)
	if oe, ok := err.(*Error); !ok || oe.Code != ErrTargetUnavailable {
		t.Fatalf("got %v, want TargetUnavailable", err)
	}
}
