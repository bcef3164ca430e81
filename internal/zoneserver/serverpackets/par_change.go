package serverpackets

import "github.com/udisondev/ronet/internal/packet"

// ParChange [0x00B0, 0x00B1]: изменился параметр персонажа (hp, sp, exp, zeny...).
//
// Format (8 bytes): [id u16][var_id u16][value u32]
type ParChange struct {
	VarID uint16
	Value uint32
}

// ParseParChange parses ZC_PAR_CHANGE and ZC_LONGPAR_CHANGE.
func ParseParChange(data []byte) (*ParChange, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_PAR_CHANGE", err)
	}

	var p ParChange
	var err error
	if p.VarID, err = r.ReadUint16(); err != nil {
		return nil, packet.Malformed("ZC_PAR_CHANGE var", err)
	}
	if p.Value, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("ZC_PAR_CHANGE value", err)
	}
	return &p, nil
}
