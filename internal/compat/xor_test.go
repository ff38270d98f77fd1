package compat

import (
	"testing"

	"github.com/mxdserver/mxd/internal/wire"
)

func xorBytesT(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ 0xFF
	}
	return out
}

func TestXorLatchLatchesOnInvalidUTF8(t *testing.T) {
	plain := []byte("alice")
	scrambled := xorBytesT(plain)

	block := wire.ParamBlock{{ID: wire.FieldLogin, Value: scrambled}}
	var x XorLatch
	decoded := x.DecodeInbound(block)
	if !x.Latched() {
		t.Fatal("expected latch to activate")
	}
	if string(decoded[0].Value) != "alice" {
		t.Fatalf("got %q, want alice", decoded[0].Value)
	}
}

func TestXorLatchDoesNotLatchOnValidUTF8(t *testing.T) {
	block := wire.ParamBlock{{ID: wire.FieldLogin, Value: []byte("alice")}}
	var x XorLatch
	decoded := x.DecodeInbound(block)
	if x.Latched() {
		t.Fatal("did not expect latch to activate for valid UTF-8")
	}
	if string(decoded[0].Value) != "alice" {
		t.Fatalf("got %q, want alice unchanged", decoded[0].Value)
	}
}

func TestXorLatchIsMonotonic(t *testing.T) {
	plain := []byte("alice")
	scrambled := xorBytesT(plain)
	var x XorLatch
	x.DecodeInbound(wire.ParamBlock{{ID: wire.FieldLogin, Value: scrambled}})
	if !x.Latched() {
		t.Fatal("expected latch after first scrambled decode")
	}

	clean := wire.ParamBlock{{ID: wire.FieldLogin, Value: []byte("bob")}}
	decoded := x.DecodeInbound(clean)
	if !x.Latched() {
		t.Fatal("latch must remain set")
	}
	if string(decoded[0].Value) == "bob" {
		t.Fatal("expected latched connection to XOR even already-valid text")
	}
}

func TestXorLatchIgnoresNonTextFields(t *testing.T) {
	block := wire.ParamBlock{
		{ID: wire.FieldLogin, Value: xorBytesT([]byte("alice"))},
		{ID: wire.FieldBannerID, Value: []byte{0, 0, 0, 1}},
	}
	var x XorLatch
	decoded := x.DecodeInbound(block)
	if string(decoded[1].Value) != string([]byte{0, 0, 0, 1}) {
		t.Fatal("non-text field must pass through unchanged")
	}
}

func TestEncodeOutboundAppliesLatch(t *testing.T) {
	var x XorLatch
	x.DecodeInbound(wire.ParamBlock{{ID: wire.FieldLogin, Value: xorBytesT([]byte("alice"))}})

	out := x.EncodeOutbound(wire.ParamBlock{{ID: wire.FieldData, Value: []byte("mxd")}})
	if string(out[0].Value) == "mxd" {
		t.Fatal("expected outbound text field to be XOR-encoded once latched")
	}
}
