package model

// Direction is one of the 8 facings used by the client (0 = south, counter-clockwise).
type Direction uint8

// Position представляет клетку карты и направление взгляда.
// Value type, передаётся по значению (immutable).
type Position struct {
	X   uint16
	Y   uint16
	Dir Direction
}

// NewPosition создаёт Position с указанными координатами.
func NewPosition(x, y uint16, dir Direction) Position {
	return Position{X: x, Y: y, Dir: dir}
}

// WithDir возвращает новый Position с обновлённым направлением.
func (p Position) WithDir(dir Direction) Position {
	p.Dir = dir
	return p
}

// Encode packs the position into 3 bytes: 10 bits x, 10 bits y, 4 bits direction.
// Coordinates above 1023 are cut to 10 bits.
func (p Position) Encode() [3]byte {
	x, y, d := uint32(p.X), uint32(p.Y), uint32(p.Dir)
	return [3]byte{
		byte(x >> 2),
		byte(x<<6 | (y>>4)&0x3F),
		byte(y<<4 | d&0x0F),
	}
}

// DecodePosition unpacks a 3-byte position.
func DecodePosition(b [3]byte) Position {
	return Position{
		X:   uint16(b[0])<<2 | uint16(b[1])>>6,
		Y:   uint16(b[1]&0x3F)<<4 | uint16(b[2])>>4,
		Dir: Direction(b[2] & 0x0F),
	}
}

// MoveData is a packed source/destination pair.
type MoveData struct {
	SrcX uint16
	SrcY uint16
	DstX uint16
	DstY uint16
	// Sub-cell offsets, sent by the server but unused by the client.
	SubX uint8
	SubY uint8
}

// Src returns the source cell.
func (m MoveData) Src() Position { return Position{X: m.SrcX, Y: m.SrcY} }

// Dst returns the destination cell.
func (m MoveData) Dst() Position { return Position{X: m.DstX, Y: m.DstY} }

// Encode packs the move into 6 bytes (4 × 10-bit coordinates and two 4-bit sub-cells).
func (m MoveData) Encode() [6]byte {
	sx, sy, dx, dy := uint32(m.SrcX), uint32(m.SrcY), uint32(m.DstX), uint32(m.DstY)
	return [6]byte{
		byte(sx >> 2),
		byte(sx<<6 | (sy>>4)&0x3F),
		byte(sy<<4 | (dx>>6)&0x0F),
		byte(dx<<2 | (dy>>8)&0x03),
		byte(dy),
		m.SubX<<4 | m.SubY&0x0F,
	}
}

// DecodeMoveData unpacks a 6-byte move.
func DecodeMoveData(b [6]byte) MoveData {
	return MoveData{
		SrcX: uint16(b[0])<<2 | uint16(b[1])>>6,
		SrcY: uint16(b[1]&0x3F)<<4 | uint16(b[2])>>4,
		DstX: uint16(b[2]&0x0F)<<6 | uint16(b[3])>>2,
		DstY: uint16(b[3]&0x03)<<8 | uint16(b[4]),
		SubX: b[5] >> 4,
		SubY: b[5] & 0x0F,
	}
}
