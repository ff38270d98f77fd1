package wire

import (
	"context"
	"io"
	"time"
)

// DefaultMaxTotalSize and DefaultReadTimeout are the reassembly cap and
// per-read deadline used when a TransactionReader is built with
// NewTransactionReader and no overrides.
const (
	DefaultMaxTotalSize = MaxTotalSize
	DefaultReadTimeout  = 5 * time.Second
)

// TransactionReader yields fully reassembled transactions from a byte
// stream, enforcing the reassembly contract of §4.1: continuation frames
// must share every header field except data_size, each carry data_size > 0,
// and the sum of data_size values must equal total_size exactly.
type TransactionReader struct {
	r       io.Reader
	maxSize uint32
	timeout time.Duration
}

// NewTransactionReader wraps r with the default payload cap (1 MiB) and
// read timeout (5s).
func NewTransactionReader(r io.Reader) *TransactionReader {
	return &TransactionReader{r: r, maxSize: DefaultMaxTotalSize, timeout: DefaultReadTimeout}
}

// WithMaxSize overrides the reassembled payload cap.
func (tr *TransactionReader) WithMaxSize(n uint32) *TransactionReader {
	tr.maxSize = n
	return tr
}

// WithTimeout overrides the per-read deadline.
func (tr *TransactionReader) WithTimeout(d time.Duration) *TransactionReader {
	tr.timeout = d
	return tr
}

// ReadTransaction reads and reassembles the next complete transaction.
func (tr *TransactionReader) ReadTransaction(ctx context.Context) (Transaction, error) {
	first, payload, err := tr.readFrame(ctx)
	if err != nil {
		return Transaction{}, err
	}
	if first.TotalSize > tr.maxSize {
		return Transaction{}, newError(ErrPayloadTooLarge, "total_size exceeds configured cap")
	}

	remaining := first.TotalSize - first.DataSize
	for remaining > 0 {
		next, chunk, err := tr.readFrame(ctx)
		if err != nil {
			return Transaction{}, err
		}
		if !first.sameTransaction(next) {
			return Transaction{}, newError(ErrHeaderMismatch, "continuation frame header diverged")
		}
		if next.DataSize == 0 {
			return Transaction{}, newError(ErrSizeMismatch, "continuation frame carries no data")
		}
		if next.DataSize > remaining {
			return Transaction{}, newError(ErrSizeMismatch, "continuation frame exceeds remaining total_size")
		}
		payload = append(payload, chunk...)
		remaining -= next.DataSize
	}

	first.DataSize = first.TotalSize
	return Transaction{Header: first, Payload: payload}, nil
}

// readFrame reads one 20-byte header plus its data_size payload bytes,
// honoring tr.timeout.
func (tr *TransactionReader) readFrame(ctx context.Context) (FrameHeader, []byte, error) {
	type result struct {
		header  FrameHeader
		payload []byte
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		var res result
		var hbuf [HeaderSize]byte
		if _, err := io.ReadFull(tr.r, hbuf[:]); err != nil {
			res.err = wrapError(ErrIO, err)
			ch <- res
			return
		}
		h, err := ParseHeader(hbuf)
		if err != nil {
			res.err = err
			ch <- res
			return
		}
		payload := make([]byte, h.DataSize)
		if h.DataSize > 0 {
			if _, err := io.ReadFull(tr.r, payload); err != nil {
				res.err = wrapError(ErrIO, err)
				ch <- res
				return
			}
		}
		res.header = h
		res.payload = payload
		ch <- res
	}()

	timeout := tr.timeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	select {
	case res := <-ch:
		return res.header, res.payload, res.err
	case <-time.After(timeout):
		return FrameHeader{}, nil, newError(ErrTimeout, "read deadline exceeded")
	case <-ctx.Done():
		return FrameHeader{}, nil, newError(ErrTimeout, "context cancelled")
	}
}
