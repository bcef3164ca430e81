package serverpackets

import (
	"github.com/udisondev/ronet/internal/packet"
)

// PincodeState is the state field of HC_SECOND_PASSWD_LOGIN.
type PincodeState uint16

const (
	PincodeOK          PincodeState = 0
	PincodeAsk         PincodeState = 1
	PincodeNew         PincodeState = 2
	PincodeChange      PincodeState = 3
	PincodeNew2        PincodeState = 4
	PincodeMessage1896 PincodeState = 5
	PincodeKSSNDenied  PincodeState = 6
	PincodeShowButton  PincodeState = 7
	PincodeWrong       PincodeState = 8
)

// Description returns the human-readable meaning of the state.
func (s PincodeState) Description() string {
	switch s {
	case PincodeOK:
		return "Pincode disabled or correct"
	case PincodeAsk:
		return "Ask for pincode"
	case PincodeNew, PincodeNew2:
		return "Create new pincode"
	case PincodeChange:
		return "Pincode must be changed"
	case PincodeMessage1896:
		return "System message 1896"
	case PincodeKSSNDenied:
		return "Unable to use KSSN number"
	case PincodeShowButton:
		return "Show button for pincode"
	case PincodeWrong:
		return "Pincode was incorrect"
	default:
		return "Unknown state"
	}
}

// SecondPasswdLogin [0x08B9]: состояние пинкода.
//
// Format (12 bytes): [id u16][seed u32][account_id u32][state u16]
type SecondPasswdLogin struct {
	Seed      uint32
	AccountID uint32
	State     PincodeState
}

// ParseSecondPasswdLogin parses a complete HC_SECOND_PASSWD_LOGIN frame.
func ParseSecondPasswdLogin(data []byte) (*SecondPasswdLogin, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("HC_SECOND_PASSWD_LOGIN", err)
	}

	var p SecondPasswdLogin
	var err error
	if p.Seed, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("HC_SECOND_PASSWD_LOGIN seed", err)
	}
	if p.AccountID, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("HC_SECOND_PASSWD_LOGIN account id", err)
	}
	state, err := r.ReadUint16()
	if err != nil {
		return nil, packet.Malformed("HC_SECOND_PASSWD_LOGIN state", err)
	}
	p.State = PincodeState(state)
	return &p, nil
}
