package outbound

import (
	"sync"

	"github.com/mxdserver/mxd/internal/wire"
)

// ReplyBuffer is a one-shot container for the synchronous request/reply
// path: exactly one transaction may be stored, and it may be taken at most
// once.
type ReplyBuffer struct {
	mu    sync.Mutex
	value wire.Transaction
	sent  bool
	taken bool
}

// SendReply stores tx as the buffer's single reply. A second call fails
// with ReplyAlreadySent.
func (b *ReplyBuffer) SendReply(tx wire.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sent {
		return newError(ErrReplyAlreadySent)
	}
	b.value = tx
	b.sent = true
	return nil
}

// TakeReply returns the stored reply the first time it is called, and
// ReplyMissing on every call thereafter (or if SendReply was never
// called).
func (b *ReplyBuffer) TakeReply() (wire.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.sent || b.taken {
		return wire.Transaction{}, newError(ErrReplyMissing)
	}
	b.taken = true
	return b.value, nil
}
