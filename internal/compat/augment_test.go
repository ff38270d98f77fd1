package compat

import (
	"testing"

	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/wire"
)

func buildReply(t *testing.T, params wire.ParamBlock) wire.Transaction {
	t.Helper()
	payload, err := wire.EncodeParams(params)
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	h := wire.ReplyHeader(107, 10, 0, len(payload))
	return wire.Transaction{Header: h, Payload: payload}
}

func TestAugmentLoginReplyAddsDefaultsForHotline85(t *testing.T) {
	tx := buildReply(t, nil)
	out, err := AugmentLoginReply(session.ClientHotline85, tx)
	if err != nil {
		t.Fatalf("AugmentLoginReply: %v", err)
	}
	block, err := out.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	hasBanner, hasName := false, false
	for _, p := range block {
		if p.ID == wire.FieldBannerID {
			hasBanner = true
		}
		if p.ID == wire.FieldServerName {
			hasName = true
		}
	}
	if !hasBanner || !hasName {
		t.Fatalf("expected both BannerId and ServerName appended, got %+v", block)
	}
	if out.Header.TotalSize != uint32(len(out.Payload)) || out.Header.DataSize != uint32(len(out.Payload)) {
		t.Fatal("expected header sizes rewritten to match new payload")
	}
}

func TestAugmentLoginReplySkipsSynHx(t *testing.T) {
	tx := buildReply(t, nil)
	out, err := AugmentLoginReply(session.ClientSynHx, tx)
	if err != nil {
		t.Fatalf("AugmentLoginReply: %v", err)
	}
	if string(out.Payload) != string(tx.Payload) {
		t.Fatal("expected SynHx reply to remain unaugmented")
	}
}

func TestAugmentLoginReplyLeavesExistingFieldsAlone(t *testing.T) {
	tx := buildReply(t, wire.ParamBlock{
		{ID: wire.FieldBannerID, Value: []byte{0, 0, 0, 7}},
		{ID: wire.FieldServerName, Value: []byte("already-set")},
	})
	out, err := AugmentLoginReply(session.ClientHotline19, tx)
	if err != nil {
		t.Fatalf("AugmentLoginReply: %v", err)
	}
	block, err := out.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if len(block) != 2 {
		t.Fatalf("expected no duplicate fields appended, got %d entries", len(block))
	}
}

func TestParseLoginVersionWidths(t *testing.T) {
	if v := ParseLoginVersion([]byte{0, 150}); v != 150 {
		t.Fatalf("u16 width: got %d, want 150", v)
	}
	if v := ParseLoginVersion([]byte{0, 0, 0, 190}); v != 190 {
		t.Fatalf("u32 width: got %d, want 190", v)
	}
}
