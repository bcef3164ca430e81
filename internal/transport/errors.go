package transport

import "errors"

var (
	// ErrInvalidPacket: bytes that cannot be parsed, or an unparseable address.
	ErrInvalidPacket = errors.New("invalid packet")

	// ErrUnexpectedDisconnect: the peer closed the connection, or there is no connection.
	ErrUnexpectedDisconnect = errors.New("unexpected disconnect")

	// ErrTimeout: connect or authentication exceeded its bound.
	ErrTimeout = errors.New("timeout")

	// ErrBufferOverflow: the receive buffer grew past its ceiling.
	// Always reported together with ErrUnexpectedDisconnect.
	ErrBufferOverflow = errors.New("receive buffer overflow")
)
