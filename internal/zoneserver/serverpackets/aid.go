package serverpackets

import "github.com/udisondev/ronet/internal/packet"

// AID [0x0283]: эхо account id после входа. Format (6 bytes): [id u16][aid u32]
type AID struct {
	AccountID uint32
}

// ParseAID parses a complete ZC_AID frame.
func ParseAID(data []byte) (*AID, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_AID", err)
	}
	aid, err := r.ReadUint32()
	if err != nil {
		return nil, packet.Malformed("ZC_AID", err)
	}
	return &AID{AccountID: aid}, nil
}
