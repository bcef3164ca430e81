package serverpackets

import "github.com/udisondev/ronet/internal/packet"

// NotifyTime [0x007F, 0x02C2]: текущий tick сервера.
//
// Format (6 bytes): [id u16][tick u32]
type NotifyTime struct {
	Tick uint32
}

// ParseNotifyTime parses ZC_NOTIFY_TIME and ZC_NOTIFY_TIME2; both share a layout.
func ParseNotifyTime(data []byte) (*NotifyTime, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_TIME", err)
	}
	tick, err := r.ReadUint32()
	if err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_TIME tick", err)
	}
	return &NotifyTime{Tick: tick}, nil
}
