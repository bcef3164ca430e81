package serverpackets

import (
	"fmt"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// NotifyChat [0x008D]: сообщение в общем чате от объекта рядом.
//
// Format (variable): [id u16][len u16][gid u32][message len-8]
//
// Сообщение обычно вида "Name : text" и заканчивается NUL.
type NotifyChat struct {
	GID     uint32
	Message string
}

// ParseNotifyChat parses a complete ZC_NOTIFY_CHAT frame.
func ParseNotifyChat(data []byte) (*NotifyChat, error) {
	r := packet.NewReader(data)
	length, err := readHeader(r, true)
	if err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_CHAT", err)
	}
	if length < constants.ZCNotifyChatMinSize || length > len(data) {
		return nil, fmt.Errorf("ZC_NOTIFY_CHAT length %d (frame %d): %w", length, len(data), packet.ErrMalformed)
	}

	gid, err := r.ReadUint32()
	if err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_CHAT gid", err)
	}
	msg, err := r.ReadBytes(length - constants.ZCNotifyChatMinSize)
	if err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_CHAT message", err)
	}
	return &NotifyChat{GID: gid, Message: packet.TrimNUL(msg)}, nil
}
