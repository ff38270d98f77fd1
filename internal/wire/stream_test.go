package wire

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestStreamReaderYieldsFragmentsInOrder(t *testing.T) {
	full := bytes.Repeat([]byte{'f'}, 70*1024)
	base := FrameHeader{Type: 212, ID: 5, TotalSize: uint32(len(full))}

	var wire bytes.Buffer
	offset := 0
	for offset < len(full) {
		end := offset + MaxFrameDataSize
		if end > len(full) {
			end = len(full)
		}
		h := base
		h.DataSize = uint32(end - offset)
		wire.Write(encodeFrame(h, full[offset:end]))
		offset = end
	}

	tr := NewTransactionReader(&wire)
	sr := NewTransactionStreamReader(tr)

	var reassembled []byte
	var lastSeen bool
	for {
		frag, err := sr.NextFragment(context.Background())
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextFragment: %v", err)
		}
		if int(frag.Offset) != len(reassembled) {
			t.Fatalf("unexpected offset: got %d, want %d", frag.Offset, len(reassembled))
		}
		reassembled = append(reassembled, frag.Payload...)
		lastSeen = frag.IsLast
		if frag.IsLast {
			break
		}
	}
	if !lastSeen {
		t.Fatal("expected final fragment to be marked IsLast")
	}
	if !bytes.Equal(reassembled, full) {
		t.Fatalf("reassembled stream mismatch: got %d bytes, want %d", len(reassembled), len(full))
	}
}

func TestStreamReaderSingleFragmentIsLast(t *testing.T) {
	payload := []byte("small")
	h := FrameHeader{Type: 212, ID: 6, TotalSize: uint32(len(payload)), DataSize: uint32(len(payload))}
	buf := encodeFrame(h, payload)

	tr := NewTransactionReader(bytes.NewReader(buf))
	sr := NewTransactionStreamReader(tr)
	frag, err := sr.NextFragment(context.Background())
	if err != nil {
		t.Fatalf("NextFragment: %v", err)
	}
	if !frag.IsLast {
		t.Fatal("expected single fragment to be last")
	}

	if _, err := sr.NextFragment(context.Background()); err != io.EOF {
		t.Fatalf("expected io.EOF after final fragment, got %v", err)
	}
}
