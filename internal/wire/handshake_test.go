package wire

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"
	"time"
)

func buildHandshakeRequest(magic [4]byte, version, subVersion uint16) []byte {
	buf := make([]byte, HandshakeRequestSize)
	copy(buf[0:4], magic[:])
	copy(buf[4:8], []byte{0, 0, 0, 0})
	binary.BigEndian.PutUint16(buf[8:10], version)
	binary.BigEndian.PutUint16(buf[10:12], subVersion)
	return buf
}

func TestReadHandshakeOK(t *testing.T) {
	req := buildHandshakeRequest(handshakeMagic, 1, 2)
	meta, code, err := ReadHandshake(context.Background(), bytes.NewReader(req), time.Second)
	if err != nil {
		t.Fatalf("ReadHandshake: %v", err)
	}
	if code != HandshakeOK {
		t.Fatalf("got code %v, want HandshakeOK", code)
	}
	if meta.Version != 1 || meta.SubVersion != 2 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestReadHandshakeInvalidMagic(t *testing.T) {
	req := buildHandshakeRequest([4]byte{'X', 'X', 'X', 'X'}, 1, 0)
	_, code, err := ReadHandshake(context.Background(), bytes.NewReader(req), time.Second)
	if err != nil {
		t.Fatalf("ReadHandshake: %v", err)
	}
	if code != HandshakeInvalid {
		t.Fatalf("got code %v, want HandshakeInvalid", code)
	}
}

func TestReadHandshakeUnsupportedVersion(t *testing.T) {
	req := buildHandshakeRequest(handshakeMagic, 2, 0)
	_, code, err := ReadHandshake(context.Background(), bytes.NewReader(req), time.Second)
	if err != nil {
		t.Fatalf("ReadHandshake: %v", err)
	}
	if code != HandshakeUnsupportedVersion {
		t.Fatalf("got code %v, want HandshakeUnsupportedVersion", code)
	}
}

func TestReadHandshakeEarlyClose(t *testing.T) {
	_, _, err := ReadHandshake(context.Background(), bytes.NewReader([]byte{'T', 'R'}), time.Second)
	if err == nil {
		t.Fatal("expected error for truncated handshake request")
	}
}

func TestReadHandshakeTimeout(t *testing.T) {
	pr, _ := newBlockingReader()
	_, code, err := ReadHandshake(context.Background(), pr, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("ReadHandshake: %v", err)
	}
	if code != HandshakeTimeout {
		t.Fatalf("got code %v, want HandshakeTimeout", code)
	}
}

func TestEncodeHandshakeReply(t *testing.T) {
	buf := EncodeHandshakeReply(HandshakeOK)
	if string(buf[0:4]) != "TRTP" {
		t.Fatalf("unexpected magic: %q", buf[0:4])
	}
	if binary.BigEndian.Uint32(buf[4:8]) != 0 {
		t.Fatalf("expected code 0, got %d", buf[4:8])
	}
}
