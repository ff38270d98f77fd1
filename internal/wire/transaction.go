package wire

// Transaction is a fully reassembled frame sequence: a header plus its
// complete payload. Invariant: len(Payload) == Header.TotalSize ==
// Header.DataSize.
type Transaction struct {
	Header  FrameHeader
	Payload []byte
}

// Params decodes the transaction's payload as a parameter block.
func (t Transaction) Params() (ParamBlock, error) {
	if len(t.Payload) == 0 {
		return nil, nil
	}
	return DecodeParams(t.Payload)
}
