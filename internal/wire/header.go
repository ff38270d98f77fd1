package wire

import "encoding/binary"

// HeaderSize is the fixed size, in bytes, of a FrameHeader on the wire.
const HeaderSize = 20

// MaxTotalSize is the largest permitted transaction payload (reassembled).
const MaxTotalSize = 1 << 20 // 1 MiB

// MaxFrameDataSize is the largest permitted payload of a single frame.
const MaxFrameDataSize = 32 * 1024 // 32 KiB

// FrameHeader is the 20-byte big-endian header preceding every frame's
// payload. A logical transaction may span several frames sharing every
// field except data_size, whose values sum to total_size.
type FrameHeader struct {
	Flags     uint8
	IsReply   uint8
	Type      uint16
	ID        uint32
	ErrorCode uint32
	TotalSize uint32
	DataSize  uint32
}

// ParseHeader decodes a 20-byte big-endian frame header and validates the
// size invariants from §3: data_size <= total_size <= 1 MiB, data_size <=
// 32 KiB, and data_size==0 with total_size>0 is forbidden.
func ParseHeader(buf [HeaderSize]byte) (FrameHeader, error) {
	h := FrameHeader{
		Flags:     buf[0],
		IsReply:   buf[1],
		Type:      binary.BigEndian.Uint16(buf[2:4]),
		ID:        binary.BigEndian.Uint32(buf[4:8]),
		ErrorCode: binary.BigEndian.Uint32(buf[8:12]),
		TotalSize: binary.BigEndian.Uint32(buf[12:16]),
		DataSize:  binary.BigEndian.Uint32(buf[16:20]),
	}
	if err := h.validate(); err != nil {
		return FrameHeader{}, err
	}
	return h, nil
}

// EncodeHeader serializes h to its 20-byte big-endian wire representation.
// It does not re-validate h; callers that construct headers directly should
// call validate via ParseHeader-equivalent checks where it matters.
func EncodeHeader(h FrameHeader) [HeaderSize]byte {
	var buf [HeaderSize]byte
	buf[0] = h.Flags
	buf[1] = h.IsReply
	binary.BigEndian.PutUint16(buf[2:4], h.Type)
	binary.BigEndian.PutUint32(buf[4:8], h.ID)
	binary.BigEndian.PutUint32(buf[8:12], h.ErrorCode)
	binary.BigEndian.PutUint32(buf[12:16], h.TotalSize)
	binary.BigEndian.PutUint32(buf[16:20], h.DataSize)
	return buf
}

func (h FrameHeader) validate() error {
	if h.Flags != 0 {
		return newError(ErrInvalidFlags, "flags must be 0")
	}
	if h.TotalSize > MaxTotalSize {
		return newError(ErrPayloadTooLarge, "total_size exceeds 1 MiB")
	}
	if h.DataSize > MaxFrameDataSize {
		return newError(ErrPayloadTooLarge, "data_size exceeds 32 KiB")
	}
	if h.DataSize > h.TotalSize {
		return newError(ErrSizeMismatch, "data_size exceeds total_size")
	}
	if h.DataSize == 0 && h.TotalSize > 0 {
		return newError(ErrSizeMismatch, "data_size is 0 but total_size is nonzero")
	}
	return nil
}

// sameTransaction reports whether h and other share every field that must
// stay fixed across a transaction's continuation frames.
func (h FrameHeader) sameTransaction(other FrameHeader) bool {
	return h.Flags == other.Flags &&
		h.IsReply == other.IsReply &&
		h.Type == other.Type &&
		h.ID == other.ID &&
		h.ErrorCode == other.ErrorCode &&
		h.TotalSize == other.TotalSize
}

// replyHeader builds a reply header mirroring a request's type/id, per
// §4.5: is_reply=1, flags=0, error=code, total_size=data_size=len(payload).
func replyHeader(reqType uint16, reqID uint32, code uint32, payloadLen int) FrameHeader {
	return FrameHeader{
		Flags:     0,
		IsReply:   1,
		Type:      reqType,
		ID:        reqID,
		ErrorCode: code,
		TotalSize: uint32(payloadLen),
		DataSize:  uint32(payloadLen),
	}
}

// ReplyHeader is the exported form of replyHeader, used by the dispatcher
// (C5) to construct well-formed reply frames. It is idempotent: the same
// inputs always produce the same header.
func ReplyHeader(reqType uint16, reqID uint32, code uint32, payloadLen int) FrameHeader {
	return replyHeader(reqType, reqID, code, payloadLen)
}
