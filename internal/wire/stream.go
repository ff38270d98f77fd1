package wire

import (
	"context"
	"io"
)

// Fragment is one frame of a transaction yielded lazily by
// TransactionStreamReader, for payloads too large to buffer in full.
type Fragment struct {
	Header  FrameHeader
	Payload []byte
	Offset  uint32
	IsLast  bool
}

// TransactionStreamReader exposes a transaction's frames one at a time
// instead of reassembling them, for payloads that must not be buffered
// (file downloads). It shares the header-first, cap-checked contract of
// TransactionReader.
type TransactionStreamReader struct {
	tr        *TransactionReader
	first     FrameHeader
	haveFirst bool
	remaining uint32
	offset    uint32
	done      bool
}

// NewTransactionStreamReader wraps an underlying TransactionReader's frame
// source for fragment-at-a-time consumption.
func NewTransactionStreamReader(tr *TransactionReader) *TransactionStreamReader {
	return &TransactionStreamReader{tr: tr}
}

// NextFragment returns the next fragment, or (Fragment{}, io.EOF) once the
// transaction's total_size has been fully consumed.
func (s *TransactionStreamReader) NextFragment(ctx context.Context) (Fragment, error) {
	if s.done {
		return Fragment{}, io.EOF
	}

	h, payload, err := s.tr.readFrame(ctx)
	if err != nil {
		return Fragment{}, err
	}

	if !s.haveFirst {
		if h.TotalSize > s.tr.maxSize {
			return Fragment{}, newError(ErrPayloadTooLarge, "total_size exceeds configured cap")
		}
		s.first = h
		s.haveFirst = true
		s.remaining = h.TotalSize - h.DataSize
	} else {
		if !s.first.sameTransaction(h) {
			return Fragment{}, newError(ErrHeaderMismatch, "continuation frame header diverged")
		}
		if h.DataSize == 0 {
			return Fragment{}, newError(ErrSizeMismatch, "continuation frame carries no data")
		}
		if h.DataSize > s.remaining {
			return Fragment{}, newError(ErrSizeMismatch, "continuation frame exceeds remaining total_size")
		}
		s.remaining -= h.DataSize
	}

	frag := Fragment{
		Header:  h,
		Payload: payload,
		Offset:  s.offset,
		IsLast:  s.remaining == 0,
	}
	s.offset += h.DataSize
	if s.remaining == 0 {
		s.done = true
	}
	return frag, nil
}
