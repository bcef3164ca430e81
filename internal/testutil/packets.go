package testutil

import (
	"encoding/binary"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// U16 кодирует uint16 в LE.
func U16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

// U32 кодирует uint32 в LE.
func U32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

// Str кодирует строку в поле фиксированной ширины.
func Str(s string, n int) []byte {
	w := packet.NewWriter(n)
	w.WriteFixedString(s, n)
	return w.Bytes()
}

// Frame собирает пакет фиксированной длины: id + части тела.
func Frame(id uint16, parts ...[]byte) []byte {
	b := U16(id)
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// VarFrame собирает пакет с длиной по смещению 2.
func VarFrame(id uint16, parts ...[]byte) []byte {
	b := append(U16(id), 0, 0)
	for _, p := range parts {
		b = append(b, p...)
	}
	binary.LittleEndian.PutUint16(b[2:], uint16(len(b)))
	return b
}

// AcceptEnterPacket собирает HC_ACCEPT_ENTER с указанными персонажами.
func AcceptEnterPacket(chars ...model.CharacterInfo) []byte {
	parts := [][]byte{{9, 9, 0}, make([]byte, 20)}
	for _, c := range chars {
		parts = append(parts, c.Bytes())
	}
	return VarFrame(constants.HCAcceptEnter, parts...)
}

// CharInfoPagePacket собирает HC_ACK_CHARINFO_PER_PAGE.
func CharInfoPagePacket(chars ...model.CharacterInfo) []byte {
	parts := make([][]byte, 0, len(chars))
	for _, c := range chars {
		parts = append(parts, c.Bytes())
	}
	return VarFrame(constants.HCCharInfoPage, parts...)
}

// NotifyZoneServerPacket собирает HC_NOTIFY_ZONESVR.
func NotifyZoneServerPacket(charID uint32, mapName string, ip [4]byte, port uint16) []byte {
	return Frame(constants.HCNotifyZone, U32(charID), Str(mapName, constants.MapNameLength), ip[:], U16(port))
}

// Character возвращает персонажа для фикстур.
func Character(charID uint32, slot uint8, name string) model.CharacterInfo {
	return model.CharacterInfo{
		CharID:    charID,
		Name:      name,
		CharNum:   slot,
		BaseLevel: 1,
		JobLevel:  1,
		HP:        40,
		MaxHP:     40,
		SP:        11,
		MaxSP:     11,
		WalkSpeed: 150,
		Str:       5,
		Agi:       5,
		Vit:       5,
		Int:       5,
		Dex:       5,
		Luk:       5,
		LastMap:   "new_1-1.gat",
		Sex:       model.SexMale,
	}
}

// EntryPacket собирает ZC_NOTIFY_STANDENTRY или ZC_NOTIFY_NEWENTRY с заданными
// gid, типом, позицией и именем; остальные поля нулевые.
func EntryPacket(id uint16, gid uint32, typ model.ObjectType, pos model.Position, name string) []byte {
	w := packet.NewWriter(constants.ZCNotifyStandEntryMinSize)
	_ = w.WriteByte(byte(typ))
	w.WriteUint32(gid) // aid
	w.WriteUint32(gid)
	w.WriteUint16(150) // speed
	w.WriteZeros(2 + 2 + 4 + 2 + 2 + 4 + 4 + 2)
	w.WriteZeros(2*6 + 4 + 2 + 2 + 4 + 1 + 1)
	p := pos.Encode()
	w.WriteBytes(p[:])
	w.WriteZeros(2) // x_size, y_size
	if id == constants.ZCNotifyStandEntry {
		_ = w.WriteByte(0)
	}
	w.WriteUint16(1) // clevel
	w.WriteZeros(2 + 4 + 4 + 1 + 2)
	w.WriteFixedString(name, constants.NameLength)
	return VarFrame(id, w.Bytes())
}

// AcceptLoginPacket собирает AC_ACCEPT_LOGIN с одним character server.
func AcceptLoginPacket(ip [4]byte, port uint16) []byte {
	return VarFrame(constants.ACAcceptLogin,
		U32(constants.TestLoginID1),
		U32(constants.TestAccountID),
		U32(constants.TestLoginID2),
		U32(0),
		make([]byte, 26),
		[]byte{byte(model.SexMale)},
		make([]byte, 17),
		ip[:], U16(port), Str("Local", 20),
		U16(0), U16(0), U16(0), make([]byte, 128),
	)
}
