package compat

import (
	"encoding/binary"

	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/wire"
)

// DefaultServerName and defaultBannerID are the values appended to a login
// reply missing them, per §4.6.
const DefaultServerName = "mxd"

var defaultBannerID = [4]byte{0, 0, 0, 0}

// ParseLoginVersion reads FieldId::Version from a login request's raw
// value, accepting either a u16 or a big-endian u32 width.
func ParseLoginVersion(raw []byte) uint32 {
	switch len(raw) {
	case 2:
		return uint32(binary.BigEndian.Uint16(raw))
	case 4:
		return binary.BigEndian.Uint32(raw)
	default:
		return 0
	}
}

// AugmentLoginReply appends BannerId/ServerName to a successful login
// reply for Hotline85 and Hotline19 clients when either is missing,
// rewriting the header's total_size/data_size to match. SynHx and Unknown
// clients are returned unmodified.
func AugmentLoginReply(gen session.ClientGeneration, tx wire.Transaction) (wire.Transaction, error) {
	if gen != session.ClientHotline85 && gen != session.ClientHotline19 {
		return tx, nil
	}

	block, err := tx.Params()
	if err != nil {
		return wire.Transaction{}, err
	}

	hasBanner := false
	hasServerName := false
	for _, p := range block {
		switch p.ID {
		case wire.FieldBannerID:
			hasBanner = true
		case wire.FieldServerName:
			hasServerName = true
		}
	}
	if hasBanner && hasServerName {
		return tx, nil
	}

	if !hasBanner {
		block = append(block, wire.Param{ID: wire.FieldBannerID, Value: append([]byte(nil), defaultBannerID[:]...)})
	}
	if !hasServerName {
		block = append(block, wire.Param{ID: wire.FieldServerName, Value: []byte(DefaultServerName)})
	}

	payload, err := wire.EncodeParams(block)
	if err != nil {
		return wire.Transaction{}, err
	}

	header := tx.Header
	header.TotalSize = uint32(len(payload))
	header.DataSize = uint32(len(payload))
	return wire.Transaction{Header: header, Payload: payload}, nil
}
