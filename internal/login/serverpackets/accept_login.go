package serverpackets

import (
	"fmt"
	"net/netip"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

const (
	lastLoginTimeLength = 26
	authTokenLength     = 17
	serverNameLength    = 20
	serverEntryUnknown  = 128
)

// ServerType is the character server kind shown in the server list.
type ServerType uint16

const (
	ServerNormal ServerType = iota
	ServerMaintenance
	ServerPvP
	ServerPK
)

func (t ServerType) String() string {
	switch t {
	case ServerNormal:
		return "NORMAL"
	case ServerMaintenance:
		return "MAINTENANCE"
	case ServerPvP:
		return "PVP"
	case ServerPK:
		return "PK"
	default:
		return fmt.Sprintf("SPECIAL(%d)", uint16(t))
	}
}

// ServerEntry: один character server из списка.
//
// Format (160 bytes):
//
//	[ip 4 bytes a.b.c.d][port u16][name 20][users u16][type u16][new u16][unknown 128]
type ServerEntry struct {
	IP    netip.Addr
	Port  uint16
	Name  string
	Users uint16
	Type  ServerType
	New   uint16
}

// Address returns "ip:port".
func (s ServerEntry) Address() string {
	return netip.AddrPortFrom(s.IP, s.Port).String()
}

// AcceptLogin [0x0AC4]: вход принят, выданы токены сессии и список серверов.
//
// Format (variable):
//
//	[id u16][len u16][login_id1 u32][account_id u32][login_id2 u32]
//	[last_ip u32][last_login_time 26][sex u8][token 17]
//	[server entry 160] × n
type AcceptLogin struct {
	LoginID1      uint32
	AccountID     uint32
	LoginID2      uint32
	LastIP        uint32
	LastLoginTime string
	Sex           model.Sex
	Token         string
	Servers       []ServerEntry
}

// Credentials returns the tokens the character server expects.
func (p *AcceptLogin) Credentials() model.Credentials {
	return model.Credentials{
		AccountID: p.AccountID,
		LoginID1:  p.LoginID1,
		LoginID2:  p.LoginID2,
		Sex:       p.Sex,
	}
}

// ParseAcceptLogin parses a complete AC_ACCEPT_LOGIN frame. A trailing
// partial server entry is ignored.
func ParseAcceptLogin(data []byte) (*AcceptLogin, error) {
	r := packet.NewReader(data)
	length, err := readHeader(r, true)
	if err != nil {
		return nil, packet.Malformed("AC_ACCEPT_LOGIN", err)
	}
	if length < constants.ACAcceptLoginHeaderSize || length > len(data) {
		return nil, fmt.Errorf("AC_ACCEPT_LOGIN length %d (frame %d): %w", length, len(data), packet.ErrMalformed)
	}

	var p AcceptLogin
	if p.LoginID1, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("AC_ACCEPT_LOGIN login id1", err)
	}
	if p.AccountID, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("AC_ACCEPT_LOGIN account id", err)
	}
	if p.LoginID2, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("AC_ACCEPT_LOGIN login id2", err)
	}
	if p.LastIP, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("AC_ACCEPT_LOGIN last ip", err)
	}
	if p.LastLoginTime, err = r.ReadFixedString(lastLoginTimeLength); err != nil {
		return nil, packet.Malformed("AC_ACCEPT_LOGIN last login time", err)
	}
	sex, err := r.ReadByte()
	if err != nil {
		return nil, packet.Malformed("AC_ACCEPT_LOGIN sex", err)
	}
	p.Sex = model.Sex(sex)
	if p.Token, err = r.ReadFixedString(authTokenLength); err != nil {
		return nil, packet.Malformed("AC_ACCEPT_LOGIN token", err)
	}

	count := (length - constants.ACAcceptLoginHeaderSize) / constants.ServerEntrySize
	p.Servers = make([]ServerEntry, 0, count)
	for i := range count {
		s, err := parseServerEntry(r)
		if err != nil {
			return nil, packet.Malformed(fmt.Sprintf("AC_ACCEPT_LOGIN server %d", i), err)
		}
		p.Servers = append(p.Servers, s)
	}
	return &p, nil
}

func parseServerEntry(r *packet.Reader) (ServerEntry, error) {
	var s ServerEntry
	ip, err := r.ReadBytes(4)
	if err != nil {
		return s, err
	}
	s.IP = netip.AddrFrom4([4]byte(ip))
	if s.Port, err = r.ReadUint16(); err != nil {
		return s, err
	}
	if s.Name, err = r.ReadFixedString(serverNameLength); err != nil {
		return s, err
	}
	if s.Users, err = r.ReadUint16(); err != nil {
		return s, err
	}
	typ, err := r.ReadUint16()
	if err != nil {
		return s, err
	}
	s.Type = ServerType(typ)
	if s.New, err = r.ReadUint16(); err != nil {
		return s, err
	}
	if err := r.Skip(serverEntryUnknown); err != nil {
		return s, err
	}
	return s, nil
}
