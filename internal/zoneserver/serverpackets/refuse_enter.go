package serverpackets

import "github.com/udisondev/ronet/internal/packet"

// RefuseEnter [0x0074]: отказ во входе на zone server.
//
// Format (3 bytes): [id u16][error_code u8]
type RefuseEnter struct {
	ErrorCode uint8
}

// ParseRefuseEnter parses a complete ZC_REFUSE_ENTER frame.
func ParseRefuseEnter(data []byte) (*RefuseEnter, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_REFUSE_ENTER", err)
	}
	code, err := r.ReadByte()
	if err != nil {
		return nil, packet.Malformed("ZC_REFUSE_ENTER code", err)
	}
	return &RefuseEnter{ErrorCode: code}, nil
}

// RefuseEnterReason describes a ZC_REFUSE_ENTER error code.
func RefuseEnterReason(code uint8) string {
	switch code {
	case 0:
		return "Normal (no error)"
	case 1:
		return "Server closed"
	case 2:
		return "Someone has already logged in with this ID"
	case 3:
		return "Already logged in"
	case 4:
		return "Environment error"
	case 8:
		return "Server still recognizes last connection"
	default:
		return "Unknown error"
	}
}
