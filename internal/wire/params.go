package wire

import "encoding/binary"

// maxParamCount and maxParamLength bound the u16 wire encodings of count and
// each entry's length.
const (
	maxParamCount  = 1<<16 - 1
	maxParamLength = 1<<16 - 1
)

// Param is a single decoded entry of a parameter block.
type Param struct {
	ID    FieldID
	Value []byte
}

// ParamBlock is an ordered sequence of parameters as they appeared on the
// wire (or as they will be encoded).
type ParamBlock []Param

// DecodeParams decodes a parameter block: count:u16 then count entries of
// {field_id:u16, length:u16, bytes[length]}. The block must be exactly
// consumed. Duplicate field ids are rejected unless the field is
// list-valued.
func DecodeParams(buf []byte) (ParamBlock, error) {
	if len(buf) < 2 {
		return nil, newError(ErrShortBuffer, "parameter block missing count")
	}
	count := binary.BigEndian.Uint16(buf[0:2])
	pos := 2
	seen := make(map[uint16]bool, count)
	block := make(ParamBlock, 0, count)
	for i := uint16(0); i < count; i++ {
		if len(buf)-pos < 4 {
			return nil, newError(ErrShortBuffer, "truncated parameter entry")
		}
		wireID := binary.BigEndian.Uint16(buf[pos : pos+2])
		length := binary.BigEndian.Uint16(buf[pos+2 : pos+4])
		pos += 4
		if len(buf)-pos < int(length) {
			return nil, newError(ErrShortBuffer, "parameter value truncated")
		}
		id := fieldIDFromWire(wireID)
		if seen[wireID] && !id.IsListValued() {
			return nil, newFieldError(ErrDuplicateField, id, "field id repeated")
		}
		seen[wireID] = true
		value := make([]byte, length)
		copy(value, buf[pos:pos+int(length)])
		pos += int(length)
		block = append(block, Param{ID: id, Value: value})
	}
	if pos != len(buf) {
		return nil, newError(ErrShortBuffer, "trailing bytes after parameter block")
	}
	return block, nil
}

// EncodeParams serializes a parameter block to its wire form.
func EncodeParams(block ParamBlock) ([]byte, error) {
	if len(block) > maxParamCount {
		return nil, newError(ErrPayloadTooLarge, "too many parameters")
	}
	size := 2
	for _, p := range block {
		if len(p.Value) > maxParamLength {
			return nil, newFieldError(ErrPayloadTooLarge, p.ID, "parameter value too large")
		}
		size += 4 + len(p.Value)
	}
	out := make([]byte, size)
	binary.BigEndian.PutUint16(out[0:2], uint16(len(block)))
	pos := 2
	for _, p := range block {
		binary.BigEndian.PutUint16(out[pos:pos+2], p.ID.Wire())
		binary.BigEndian.PutUint16(out[pos+2:pos+4], uint16(len(p.Value)))
		pos += 4
		copy(out[pos:], p.Value)
		pos += len(p.Value)
	}
	return out, nil
}

// ParamMap is a FieldId -> values index over a decoded ParamBlock, used by
// command constructors that pull required parameters with first-value
// semantics while still allowing list-valued fields to be enumerated.
type ParamMap struct {
	values map[uint16][][]byte
}

// NewParamMap indexes block by field id, preserving wire order within each
// id's value list.
func NewParamMap(block ParamBlock) ParamMap {
	m := ParamMap{values: make(map[uint16][][]byte, len(block))}
	for _, p := range block {
		wireID := p.ID.Wire()
		m.values[wireID] = append(m.values[wireID], p.Value)
	}
	return m
}

// First returns the first value stored for id, if any.
func (m ParamMap) First(id FieldID) ([]byte, bool) {
	vs, ok := m.values[id.Wire()]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

// All returns every value stored for id, in wire order.
func (m ParamMap) All(id FieldID) [][]byte {
	return m.values[id.Wire()]
}

// RequireFirst returns the first value for id, or a MissingField error.
func (m ParamMap) RequireFirst(id FieldID) ([]byte, error) {
	v, ok := m.First(id)
	if !ok {
		return nil, newFieldError(ErrMissingField, id, "required field absent")
	}
	return v, nil
}
