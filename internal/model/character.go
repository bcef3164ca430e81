package model

import (
	"fmt"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// CharacterInfo is one character slot as sent by the character server.
// Wire size is constants.CharacterInfoSize; field order is the wire order.
type CharacterInfo struct {
	CharID       uint32
	BaseExp      uint64
	Zeny         uint32
	JobExp       uint64
	JobLevel     uint32
	BodyState    uint32
	HealthState  uint32
	Option       uint32
	Karma        uint32
	Manner       uint32
	StatusPoint  uint16
	HP           uint64
	MaxHP        uint64
	SP           uint64
	MaxSP        uint64
	WalkSpeed    uint16
	Class        uint16
	Hair         uint16
	Body         uint16
	Weapon       uint16
	BaseLevel    uint16
	SkillPoint   uint16
	HeadBottom   uint16
	Shield       uint16
	HeadTop      uint16
	HeadMid      uint16
	HairColor    uint16
	ClothesColor uint16
	Name         string // 24 bytes on the wire
	Str          uint8
	Agi          uint8
	Vit          uint8
	Int          uint8
	Dex          uint8
	Luk          uint8
	CharNum      uint8 // slot index
	HairColor2   uint8
	Rename       uint16
	LastMap      string // 16 bytes on the wire
	DeleteDate   uint32
	Robe         uint32
	SlotChange   uint32
	CharRename   uint32
	Sex          Sex
}

// ParseCharacterInfo reads one 175-byte record.
func ParseCharacterInfo(r *packet.Reader) (CharacterInfo, error) {
	if r.Remaining() < constants.CharacterInfoSize {
		return CharacterInfo{}, fmt.Errorf("character info: %w (have %d, need %d)",
			packet.ErrTruncated, r.Remaining(), constants.CharacterInfoSize)
	}

	// Длина проверена выше, поэтому ошибки отдельных чтений невозможны.
	var c CharacterInfo
	u16 := func() uint16 { v, _ := r.ReadUint16(); return v }
	u32 := func() uint32 { v, _ := r.ReadUint32(); return v }
	u64 := func() uint64 { v, _ := r.ReadUint64(); return v }
	u8 := func() uint8 { v, _ := r.ReadByte(); return v }
	str := func(n int) string { v, _ := r.ReadFixedString(n); return v }

	c.CharID = u32()
	c.BaseExp = u64()
	c.Zeny = u32()
	c.JobExp = u64()
	c.JobLevel = u32()
	c.BodyState = u32()
	c.HealthState = u32()
	c.Option = u32()
	c.Karma = u32()
	c.Manner = u32()
	c.StatusPoint = u16()
	c.HP = u64()
	c.MaxHP = u64()
	c.SP = u64()
	c.MaxSP = u64()
	c.WalkSpeed = u16()
	c.Class = u16()
	c.Hair = u16()
	c.Body = u16()
	c.Weapon = u16()
	c.BaseLevel = u16()
	c.SkillPoint = u16()
	c.HeadBottom = u16()
	c.Shield = u16()
	c.HeadTop = u16()
	c.HeadMid = u16()
	c.HairColor = u16()
	c.ClothesColor = u16()
	c.Name = str(constants.NameLength)
	c.Str = u8()
	c.Agi = u8()
	c.Vit = u8()
	c.Int = u8()
	c.Dex = u8()
	c.Luk = u8()
	c.CharNum = u8()
	c.HairColor2 = u8()
	c.Rename = u16()
	c.LastMap = str(constants.MapNameLength)
	c.DeleteDate = u32()
	c.Robe = u32()
	c.SlotChange = u32()
	c.CharRename = u32()
	c.Sex = Sex(u8())

	return c, nil
}

// WriteTo appends the 175-byte wire form of c to w.
// Name and LastMap longer than their fields are truncated.
func (c *CharacterInfo) WriteTo(w *packet.Writer) {
	w.WriteUint32(c.CharID)
	w.WriteUint64(c.BaseExp)
	w.WriteUint32(c.Zeny)
	w.WriteUint64(c.JobExp)
	w.WriteUint32(c.JobLevel)
	w.WriteUint32(c.BodyState)
	w.WriteUint32(c.HealthState)
	w.WriteUint32(c.Option)
	w.WriteUint32(c.Karma)
	w.WriteUint32(c.Manner)
	w.WriteUint16(c.StatusPoint)
	w.WriteUint64(c.HP)
	w.WriteUint64(c.MaxHP)
	w.WriteUint64(c.SP)
	w.WriteUint64(c.MaxSP)
	w.WriteUint16(c.WalkSpeed)
	w.WriteUint16(c.Class)
	w.WriteUint16(c.Hair)
	w.WriteUint16(c.Body)
	w.WriteUint16(c.Weapon)
	w.WriteUint16(c.BaseLevel)
	w.WriteUint16(c.SkillPoint)
	w.WriteUint16(c.HeadBottom)
	w.WriteUint16(c.Shield)
	w.WriteUint16(c.HeadTop)
	w.WriteUint16(c.HeadMid)
	w.WriteUint16(c.HairColor)
	w.WriteUint16(c.ClothesColor)
	w.WriteFixedString(c.Name, constants.NameLength)
	_ = w.WriteByte(c.Str)
	_ = w.WriteByte(c.Agi)
	_ = w.WriteByte(c.Vit)
	_ = w.WriteByte(c.Int)
	_ = w.WriteByte(c.Dex)
	_ = w.WriteByte(c.Luk)
	_ = w.WriteByte(c.CharNum)
	_ = w.WriteByte(c.HairColor2)
	w.WriteUint16(c.Rename)
	w.WriteFixedString(c.LastMap, constants.MapNameLength)
	w.WriteUint32(c.DeleteDate)
	w.WriteUint32(c.Robe)
	w.WriteUint32(c.SlotChange)
	w.WriteUint32(c.CharRename)
	_ = w.WriteByte(byte(c.Sex))
}

// Bytes returns the 175-byte wire form of c.
func (c *CharacterInfo) Bytes() []byte {
	w := packet.NewWriter(constants.CharacterInfoSize)
	c.WriteTo(w)
	return w.Bytes()
}

// IsDeletionPending reports whether the character is scheduled for deletion.
func (c *CharacterInfo) IsDeletionPending() bool {
	return c.DeleteDate != 0
}
