package serverpackets

import (
	"net/netip"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// NotifyZoneServer [0x0071]: адрес zone server для выбранного персонажа.
//
// Format (28 bytes):
//
//	[id u16][char_id u32][map_name 16][ip 4 bytes a.b.c.d][port u16]
type NotifyZoneServer struct {
	CharID  uint32
	MapName string
	IP      netip.Addr
	Port    uint16
}

// Address returns "ip:port".
func (p *NotifyZoneServer) Address() string {
	return netip.AddrPortFrom(p.IP, p.Port).String()
}

// ParseNotifyZoneServer parses a complete HC_NOTIFY_ZONESVR frame.
func ParseNotifyZoneServer(data []byte) (*NotifyZoneServer, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("HC_NOTIFY_ZONESVR", err)
	}

	var p NotifyZoneServer
	var err error
	if p.CharID, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("HC_NOTIFY_ZONESVR char id", err)
	}
	if p.MapName, err = r.ReadFixedString(constants.MapNameLength); err != nil {
		return nil, packet.Malformed("HC_NOTIFY_ZONESVR map", err)
	}
	ip, err := r.ReadBytes(4)
	if err != nil {
		return nil, packet.Malformed("HC_NOTIFY_ZONESVR ip", err)
	}
	p.IP = netip.AddrFrom4([4]byte(ip))
	if p.Port, err = r.ReadUint16(); err != nil {
		return nil, packet.Malformed("HC_NOTIFY_ZONESVR port", err)
	}
	return &p, nil
}
