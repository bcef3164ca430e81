package serverpackets

import "github.com/udisondev/ronet/internal/packet"

// Ping [0x0187]: ответ сервера на keepalive.
//
// Format (6 bytes): [id u16][account_id u32]
type Ping struct {
	AccountID uint32
}

// ParsePing parses a complete HC_PING frame.
func ParsePing(data []byte) (*Ping, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("HC_PING", err)
	}
	aid, err := r.ReadUint32()
	if err != nil {
		return nil, packet.Malformed("HC_PING account id", err)
	}
	return &Ping{AccountID: aid}, nil
}
