package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// RequestMove2 [0x035F]: запрос перемещения в клетку.
//
// Format (5 bytes): [id u16][dest posdir 3]
type RequestMove2 struct {
	Dest model.Position
}

// Write serializes the packet.
func (p RequestMove2) Write() []byte {
	w := packet.NewWriter(constants.CZRequestMove2Size)
	w.WriteUint16(constants.CZRequestMove2)
	pos := p.Dest.Encode()
	w.WriteBytes(pos[:])
	return w.Bytes()
}
