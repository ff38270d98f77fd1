package wire

import (
	"context"
	"encoding/binary"
	"io"
	"time"
)

// HandshakeRequestSize and HandshakeReplySize are the fixed wire sizes of
// the handshake exchange that precedes any framed transaction.
const (
	HandshakeRequestSize = 12
	HandshakeReplySize   = 8
)

// handshakeMagic is the 4-byte protocol identifier both sides must agree on.
var handshakeMagic = [4]byte{'T', 'R', 'T', 'P'}

// HandshakeCode is the outcome carried in the 8-byte handshake reply.
type HandshakeCode uint32

const (
	HandshakeOK                 HandshakeCode = 0
	HandshakeInvalid            HandshakeCode = 1
	HandshakeUnsupportedVersion HandshakeCode = 2
	HandshakeTimeout            HandshakeCode = 3
)

// HandshakeMetadata is recorded once per connection on a successful
// handshake and never mutated afterward.
type HandshakeMetadata struct {
	SubProtocol [4]byte
	Version     uint16
	SubVersion  uint16
}

// DefaultHandshakeTimeout bounds how long ReadHandshake waits for the
// initial 12 bytes.
const DefaultHandshakeTimeout = 5 * time.Second

// ReadHandshake reads and validates the 12-byte handshake request from r
// within timeout. It returns the parsed metadata and the code to reply
// with; callers must still send EncodeHandshakeReply(code) and close the
// connection on any non-OK code.
func ReadHandshake(ctx context.Context, r io.Reader, timeout time.Duration) (HandshakeMetadata, HandshakeCode, error) {
	if timeout <= 0 {
		timeout = DefaultHandshakeTimeout
	}
	type result struct {
		buf [HandshakeRequestSize]byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		var res result
		_, res.err = io.ReadFull(r, res.buf[:])
		ch <- res
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return HandshakeMetadata{}, HandshakeInvalid, res.err
		}
		return parseHandshakeBuf(res.buf)
	case <-time.After(timeout):
		return HandshakeMetadata{}, HandshakeTimeout, nil
	case <-ctx.Done():
		return HandshakeMetadata{}, HandshakeTimeout, ctx.Err()
	}
}

func parseHandshakeBuf(buf [HandshakeRequestSize]byte) (HandshakeMetadata, HandshakeCode, error) {
	var meta HandshakeMetadata
	copy(meta.SubProtocol[:], buf[4:8])
	meta.Version = binary.BigEndian.Uint16(buf[8:10])
	meta.SubVersion = binary.BigEndian.Uint16(buf[10:12])

	if [4]byte{buf[0], buf[1], buf[2], buf[3]} != handshakeMagic {
		return meta, HandshakeInvalid, nil
	}
	if meta.Version != 1 {
		return meta, HandshakeUnsupportedVersion, nil
	}
	return meta, HandshakeOK, nil
}

// EncodeHandshakeReply serializes the 8-byte handshake reply for code.
func EncodeHandshakeReply(code HandshakeCode) [HandshakeReplySize]byte {
	var buf [HandshakeReplySize]byte
	copy(buf[0:4], handshakeMagic[:])
	binary.BigEndian.PutUint32(buf[4:8], uint32(code))
	return buf
}
