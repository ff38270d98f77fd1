package wire

import "testing"

func TestDecodeEncodeParamsRoundTrip(t *testing.T) {
	block := ParamBlock{
		{ID: FieldLogin, Value: []byte("alice")},
		{ID: FieldPassword, Value: []byte("secret")},
	}
	buf, err := EncodeParams(block)
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	got, err := DecodeParams(buf)
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	if len(got) != len(block) {
		t.Fatalf("got %d params, want %d", len(got), len(block))
	}
	for i := range block {
		if got[i].ID != block[i].ID || string(got[i].Value) != string(block[i].Value) {
			t.Fatalf("param %d mismatch: got %+v, want %+v", i, got[i], block[i])
		}
	}
}

func TestDecodeParamsAllowsRepeatedListValuedField(t *testing.T) {
	buf, err := EncodeParams(ParamBlock{
		{ID: FieldFileName, Value: []byte("fileA.txt")},
		{ID: FieldFileName, Value: []byte("fileC.txt")},
	})
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	block, err := DecodeParams(buf)
	if err != nil {
		t.Fatalf("expected repeated FileName fields to decode, got %v", err)
	}
	if len(block) != 2 {
		t.Fatalf("got %d params, want 2", len(block))
	}
}

func TestDecodeParamsRejectsDuplicateNonListField(t *testing.T) {
	buf, err := EncodeParams(ParamBlock{
		{ID: FieldLogin, Value: []byte("alice")},
		{ID: FieldLogin, Value: []byte("bob")},
	})
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	if _, err := DecodeParams(buf); err == nil {
		t.Fatal("expected duplicate Login field to be rejected")
	}
}

func TestDecodeParamsRejectsTrailingBytes(t *testing.T) {
	buf, err := EncodeParams(ParamBlock{{ID: FieldLogin, Value: []byte("a")}})
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	buf = append(buf, 0xFF)
	if _, err := DecodeParams(buf); err == nil {
		t.Fatal("expected trailing byte to be rejected")
	}
}

func TestDecodeParamsRejectsShortBuffer(t *testing.T) {
	if _, err := DecodeParams([]byte{0x00}); err == nil {
		t.Fatal("expected short buffer to be rejected")
	}
}

func TestDecodeParamsEmptyBlock(t *testing.T) {
	buf, err := EncodeParams(nil)
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	block, err := DecodeParams(buf)
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	if len(block) != 0 {
		t.Fatalf("expected empty block, got %d entries", len(block))
	}
}

func TestParamMapFirstValueSemantics(t *testing.T) {
	block := ParamBlock{
		{ID: FieldFileName, Value: []byte("fileA.txt")},
		{ID: FieldFileName, Value: []byte("fileC.txt")},
	}
	m := NewParamMap(block)
	v, ok := m.First(FieldFileName)
	if !ok || string(v) != "fileA.txt" {
		t.Fatalf("First: got %q ok=%v, want fileA.txt", v, ok)
	}
	all := m.All(FieldFileName)
	if len(all) != 2 {
		t.Fatalf("All: got %d values, want 2", len(all))
	}
}

func TestParamMapRequireFirstMissing(t *testing.T) {
	m := NewParamMap(nil)
	if _, err := m.RequireFirst(FieldLogin); err == nil {
		t.Fatal("expected missing field error")
	}
}

func TestOtherFieldRoundTrips(t *testing.T) {
	f := OtherField(9999)
	if f.Wire() != 9999 {
		t.Fatalf("got %d, want 9999", f.Wire())
	}
	if f.IsListValued() || f.IsText() {
		t.Fatal("unknown field should not be list-valued or text")
	}
}
