package login

// ConnectionState represents the state machine for a login connection.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota // нет соединения
	StateConnected                           // TCP connected, CA_LOGIN sent
	StateAuthedLogin                         // AC_ACCEPT_LOGIN received
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnected:
		return "CONNECTED"
	case StateAuthedLogin:
		return "AUTHED_LOGIN"
	default:
		return "UNKNOWN"
	}
}
