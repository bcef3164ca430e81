package serverpackets

import (
	"fmt"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// EntryKind tells which of the three spawn packets produced a SpawnEntity.
type EntryKind uint8

const (
	// EntryStand: объект уже стоит в зоне видимости (0x09FF).
	EntryStand EntryKind = iota
	// EntryNew: объект только что появился (0x09FE).
	EntryNew
	// EntryMove: объект вошёл в зону видимости на ходу (0x09FD).
	EntryMove
)

func (k EntryKind) String() string {
	switch k {
	case EntryStand:
		return "STAND"
	case EntryNew:
		return "NEW"
	case EntryMove:
		return "MOVE"
	default:
		return "UNKNOWN"
	}
}

// SpawnEntity is a decoded ZC_NOTIFY_*ENTRY packet.
//
// Format (variable), общий для трёх пакетов:
//
//	[id u16][len u16][objecttype u8][aid u32][gid u32][speed u16]
//	[body_state u16][health_state u16][effect_state u32][job u16][head u16]
//	[weapon u32][shield u32][accessory u16]
//	([move_start_time u32] только MOVE)
//	[accessory2 u16][accessory3 u16][head_palette u16][body_palette u16]
//	[head_dir u16][robe u16][guild_id u32][guild_emblem_ver u16][honor u16]
//	[virtue u32][is_pk u8][sex u8]
//	[posdir 3] или [movedata 6] для MOVE
//	[x_size u8][y_size u8]
//	([state u8] только STAND)
//	[clevel u16][font u16][max_hp u32][hp u32][is_boss u8][body u16][name 24]
type SpawnEntity struct {
	Kind EntryKind

	ObjectType     model.ObjectType
	AID            uint32
	GID            uint32
	Speed          uint16
	BodyState      uint16
	HealthState    uint16
	EffectState    uint32
	Job            uint16
	Head           uint16
	Weapon         uint32
	Shield         uint32
	Accessory      uint16
	MoveStartTime  uint32
	Accessory2     uint16
	Accessory3     uint16
	HeadPalette    uint16
	BodyPalette    uint16
	HeadDir        uint16
	Robe           uint16
	GuildID        uint32
	GuildEmblemVer uint16
	Honor          uint16
	Virtue         uint32
	IsPK           bool
	Sex            model.Sex

	// Position задан для STAND и NEW. Для MOVE это точка старта Move.
	Position model.Position
	// Move задан только для MOVE.
	Move     model.MoveData

	XSize  uint8
	YSize  uint8
	State  uint8
	CLevel uint16
	Font   uint16
	MaxHP  uint32
	HP     uint32
	IsBoss bool
	Body   uint16
	Name   string
}

// ParseStandEntry parses ZC_NOTIFY_STANDENTRY.
func ParseStandEntry(data []byte) (*SpawnEntity, error) {
	return parseEntry(data, EntryStand)
}

// ParseNewEntry parses ZC_NOTIFY_NEWENTRY.
func ParseNewEntry(data []byte) (*SpawnEntity, error) {
	return parseEntry(data, EntryNew)
}

// ParseMoveEntry parses ZC_NOTIFY_MOVEENTRY.
func ParseMoveEntry(data []byte) (*SpawnEntity, error) {
	return parseEntry(data, EntryMove)
}

func entryName(kind EntryKind) string {
	switch kind {
	case EntryNew:
		return "ZC_NOTIFY_NEWENTRY"
	case EntryMove:
		return "ZC_NOTIFY_MOVEENTRY"
	default:
		return "ZC_NOTIFY_STANDENTRY"
	}
}

func entryMinSize(kind EntryKind) int {
	switch kind {
	case EntryNew:
		return constants.ZCNotifyNewEntryMinSize
	case EntryMove:
		return constants.ZCNotifyMoveEntryMinSize
	default:
		return constants.ZCNotifyStandEntryMinSize
	}
}

func parseEntry(data []byte, kind EntryKind) (*SpawnEntity, error) {
	name := entryName(kind)
	r := packet.NewReader(data)
	length, err := readHeader(r, true)
	if err != nil {
		return nil, packet.Malformed(name, err)
	}
	if length < entryMinSize(kind) || length > len(data) {
		return nil, fmt.Errorf("%s length %d (frame %d, need %d): %w",
			name, length, len(data), entryMinSize(kind), packet.ErrMalformed)
	}

	fr := fieldReader{r: r}
	e := SpawnEntity{Kind: kind}
	e.ObjectType = model.ObjectType(fr.u8())
	e.AID = fr.u32()
	e.GID = fr.u32()
	e.Speed = fr.u16()
	e.BodyState = fr.u16()
	e.HealthState = fr.u16()
	e.EffectState = fr.u32()
	e.Job = fr.u16()
	e.Head = fr.u16()
	e.Weapon = fr.u32()
	e.Shield = fr.u32()
	e.Accessory = fr.u16()
	if kind == EntryMove {
		e.MoveStartTime = fr.u32()
	}
	e.Accessory2 = fr.u16()
	e.Accessory3 = fr.u16()
	e.HeadPalette = fr.u16()
	e.BodyPalette = fr.u16()
	e.HeadDir = fr.u16()
	e.Robe = fr.u16()
	e.GuildID = fr.u32()
	e.GuildEmblemVer = fr.u16()
	e.Honor = fr.u16()
	e.Virtue = fr.u32()
	e.IsPK = fr.u8() != 0
	e.Sex = model.Sex(fr.u8())
	if kind == EntryMove {
		e.Move = model.DecodeMoveData(fr.moveData())
		e.Position = e.Move.Src()
	} else {
		e.Position = model.DecodePosition(fr.position())
	}
	e.XSize = fr.u8()
	e.YSize = fr.u8()
	if kind == EntryStand {
		e.State = fr.u8()
	}
	e.CLevel = fr.u16()
	e.Font = fr.u16()
	e.MaxHP = fr.u32()
	e.HP = fr.u32()
	e.IsBoss = fr.u8() != 0
	e.Body = fr.u16()
	e.Name = fr.str(constants.NameLength)

	if fr.err != nil {
		return nil, packet.Malformed(name, fr.err)
	}
	return &e, nil
}

// fieldReader запоминает первую ошибку чтения; после неё все чтения
// возвращают нулевые значения.
type fieldReader struct {
	r   *packet.Reader
	err error
}

func (f *fieldReader) u8() uint8 {
	if f.err != nil {
		return 0
	}
	var v uint8
	v, f.err = f.r.ReadByte()
	return v
}

func (f *fieldReader) u16() uint16 {
	if f.err != nil {
		return 0
	}
	var v uint16
	v, f.err = f.r.ReadUint16()
	return v
}

func (f *fieldReader) u32() uint32 {
	if f.err != nil {
		return 0
	}
	var v uint32
	v, f.err = f.r.ReadUint32()
	return v
}

func (f *fieldReader) str(n int) string {
	if f.err != nil {
		return ""
	}
	var v string
	v, f.err = f.r.ReadFixedString(n)
	return v
}

func (f *fieldReader) position() [3]byte {
	if f.err != nil {
		return [3]byte{}
	}
	var v [3]byte
	v, f.err = readPosition(f.r)
	return v
}

func (f *fieldReader) moveData() [6]byte {
	if f.err != nil {
		return [6]byte{}
	}
	var v [6]byte
	v, f.err = readMoveData(f.r)
	return v
}
