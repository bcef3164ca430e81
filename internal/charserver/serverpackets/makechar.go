package serverpackets

import (
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// AcceptMakeChar [0x0B6F]: персонаж создан.
//
// Format (177 bytes): [id u16][CharacterInfo]
type AcceptMakeChar struct {
	Character model.CharacterInfo
}

// ParseAcceptMakeChar parses a complete HC_ACCEPT_MAKECHAR frame.
func ParseAcceptMakeChar(data []byte) (*AcceptMakeChar, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("HC_ACCEPT_MAKECHAR", err)
	}
	c, err := model.ParseCharacterInfo(r)
	if err != nil {
		return nil, packet.Malformed("HC_ACCEPT_MAKECHAR character", err)
	}
	return &AcceptMakeChar{Character: c}, nil
}

// Refuse is the common shape of HC_REFUSE_MAKECHAR [0x006E] and
// HC_REFUSE_DELETECHAR [0x0070].
//
// Format (3 bytes): [id u16][error_code u8]
type Refuse struct {
	ErrorCode uint8
}

// ParseRefuse parses a complete 3-byte refusal frame.
func ParseRefuse(data []byte) (*Refuse, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("HC_REFUSE", err)
	}
	code, err := r.ReadByte()
	if err != nil {
		return nil, packet.Malformed("HC_REFUSE error code", err)
	}
	return &Refuse{ErrorCode: code}, nil
}

// MakeCharRefusalReason describes an HC_REFUSE_MAKECHAR code.
func MakeCharRefusalReason(code uint8) string {
	switch code {
	case 0x00:
		return "Character name already exists"
	case 0xFF:
		return "Character name contains invalid characters"
	default:
		return "Unknown error"
	}
}

// DeleteCharRefusalReason describes an HC_REFUSE_DELETECHAR code.
func DeleteCharRefusalReason(code uint8) string {
	switch code {
	case 0x00:
		return "Not eligible to delete"
	default:
		return "Unknown error"
	}
}
