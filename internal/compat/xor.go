// Package compat implements the client-compatibility shims of §4.6: the
// per-connection XOR text-field latch for legacy clients, and login-reply
// augmentation keyed on client generation.
package compat

import (
	"unicode/utf8"

	"github.com/mxdserver/mxd/internal/wire"
)

// XorLatch is a per-connection, monotonic flag: once every text field in an
// inbound payload is found to require XOR-0xFF decoding, every subsequent
// inbound and outbound payload on the connection is XOR-transformed on its
// text fields. It never clears.
type XorLatch struct {
	latched bool
}

// Latched reports whether XOR transcoding is currently active.
func (x *XorLatch) Latched() bool {
	return x.latched
}

// DecodeInbound inspects a freshly decoded parameter block from an inbound
// request. If it is not already latched, it checks whether any text field
// is invalid UTF-8 and every text field becomes valid UTF-8 after XORing
// each byte with 0xFF; if so it latches and returns the XOR-decoded block.
// Once latched, every block (inbound or outbound) is XOR-transformed on its
// text fields unconditionally.
func (x *XorLatch) DecodeInbound(block wire.ParamBlock) wire.ParamBlock {
	if x.latched {
		return xorTextFields(block)
	}
	if shouldLatch(block) {
		x.latched = true
		return xorTextFields(block)
	}
	return block
}

// EncodeOutbound applies the latch (if active) to an outbound parameter
// block before it is written to the wire.
func (x *XorLatch) EncodeOutbound(block wire.ParamBlock) wire.ParamBlock {
	if !x.latched {
		return block
	}
	return xorTextFields(block)
}

// shouldLatch reports whether block contains at least one text field that
// is not valid UTF-8, while every text field in block becomes valid UTF-8
// once each byte is XORed with 0xFF.
func shouldLatch(block wire.ParamBlock) bool {
	anyInvalid := false
	for _, p := range block {
		if !p.ID.IsText() {
			continue
		}
		if !utf8.Valid(p.Value) {
			anyInvalid = true
		}
		if !utf8.Valid(xorBytes(p.Value)) {
			return false
		}
	}
	return anyInvalid
}

func xorTextFields(block wire.ParamBlock) wire.ParamBlock {
	out := make(wire.ParamBlock, len(block))
	for i, p := range block {
		if p.ID.IsText() {
			out[i] = wire.Param{ID: p.ID, Value: xorBytes(p.Value)}
		} else {
			out[i] = p
		}
	}
	return out
}

func xorBytes(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ 0xFF
	}
	return out
}
