package serverpackets

import "github.com/udisondev/ronet/internal/packet"

const blockDateLength = 20

// RefuseLogin [0x006A]: вход отклонён.
//
// Format (23 bytes): [id u16][error_code u8][block_date 20]
type RefuseLogin struct {
	ErrorCode uint8
	BlockDate string
}

// ParseRefuseLogin parses a complete AC_REFUSE_LOGIN frame.
func ParseRefuseLogin(data []byte) (*RefuseLogin, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("AC_REFUSE_LOGIN", err)
	}

	var p RefuseLogin
	var err error
	if p.ErrorCode, err = r.ReadByte(); err != nil {
		return nil, packet.Malformed("AC_REFUSE_LOGIN code", err)
	}
	if p.BlockDate, err = r.ReadFixedString(blockDateLength); err != nil {
		return nil, packet.Malformed("AC_REFUSE_LOGIN block date", err)
	}
	return &p, nil
}

// RefuseLoginReason describes an AC_REFUSE_LOGIN error code.
func RefuseLoginReason(code uint8) string {
	switch code {
	case 0:
		return "Unregistered ID"
	case 1:
		return "Incorrect password"
	case 2:
		return "Account expired"
	case 3:
		return "Rejected from server"
	case 4:
		return "Blocked by GM"
	case 5:
		return "Not latest game EXE"
	case 6:
		return "Banned"
	case 7:
		return "Already online"
	case 8:
		return "Server full"
	case 9:
		return "Company limited"
	case 99:
		return "Account locked"
	default:
		return "Unknown error"
	}
}
