package capture

import "fmt"

// Protocol identifies which server a TCP flow talks to.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolLogin
	ProtocolChar
	ProtocolZone
)

func (p Protocol) String() string {
	switch p {
	case ProtocolLogin:
		return "login"
	case ProtocolChar:
		return "char"
	case ProtocolZone:
		return "zone"
	default:
		return "unknown"
	}
}

// Direction of a payload relative to the game client.
type Direction int

const (
	ToServer Direction = iota
	ToClient
)

func (d Direction) String() string {
	if d == ToClient {
		return "S->C"
	}
	return "C->S"
}

// Ports maps well-known server ports to protocols.
// Классификация по портам: другого признака у потока нет.
type Ports struct {
	Login uint16
	Char  uint16
	Zone  uint16
}

// DefaultPorts are the rAthena defaults.
var DefaultPorts = Ports{Login: 6900, Char: 6121, Zone: 5121}

// Classify returns the protocol and direction of a segment sent from src to dst.
// A destination match wins: the client uses ephemeral ports.
func (p Ports) Classify(src, dst uint16) (Protocol, Direction) {
	if proto := p.protocol(dst); proto != ProtocolUnknown {
		return proto, ToServer
	}
	if proto := p.protocol(src); proto != ProtocolUnknown {
		return proto, ToClient
	}
	return ProtocolUnknown, ToServer
}

func (p Ports) protocol(port uint16) Protocol {
	switch port {
	case 0:
		return ProtocolUnknown
	case p.Login:
		return ProtocolLogin
	case p.Char:
		return ProtocolChar
	case p.Zone:
		return ProtocolZone
	default:
		return ProtocolUnknown
	}
}

func (p Ports) String() string {
	return fmt.Sprintf("login=%d char=%d zone=%d", p.Login, p.Char, p.Zone)
}
