package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/udisondev/ronet/internal/constants"
)

// Options tune a Conn. Zero values fall back to package defaults.
type Options struct {
	// MaxBuffer is the receive buffer ceiling in bytes.
	MaxBuffer int
	// WriteTimeout bounds a single Send.
	WriteTimeout time.Duration
	// PollWait is how long PollReceive lets a read wait before treating the
	// socket as "would block".
	PollWait time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxBuffer <= 0 {
		o.MaxBuffer = constants.MaxReceiveBuffer
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = constants.WriteTimeout
	}
	if o.PollWait <= 0 {
		o.PollWait = time.Millisecond
	}
	return o
}

// Conn is a poll-driven TCP connection with an accumulating receive buffer.
//
// Conn is not safe for concurrent use: it is owned by exactly one client and
// driven from that client's Update.
type Conn struct {
	conn  net.Conn
	addr  string
	opts  Options
	buf   []byte
	chunk []byte
}

// Dial opens a TCP connection to address, failing after timeout.
// No retry is attempted.
func Dial(address string, timeout time.Duration, opts Options) (*Conn, error) {
	if _, _, err := net.SplitHostPort(address); err != nil {
		return nil, fmt.Errorf("parsing address %q: %w: %w", address, ErrInvalidPacket, err)
	}

	d := net.Dialer{Timeout: timeout}
	nc, err := d.Dial("tcp", address)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, fmt.Errorf("connecting to %s: %w: %w", address, ErrTimeout, err)
		}
		return nil, fmt.Errorf("connecting to %s: %w", address, err)
	}

	return newConn(nc, address, opts), nil
}

// Wrap adopts an already connected net.Conn.
func Wrap(nc net.Conn, opts Options) *Conn {
	return newConn(nc, nc.RemoteAddr().String(), opts)
}

func newConn(nc net.Conn, addr string, opts Options) *Conn {
	if tcp, ok := nc.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}

	slog.Debug("connected", "addr", addr)

	return &Conn{
		conn:  nc,
		addr:  addr,
		opts:  opts.withDefaults(),
		chunk: make([]byte, constants.ReadChunkSize),
	}
}

// Connected reports whether the socket is open.
func (c *Conn) Connected() bool {
	return c != nil && c.conn != nil
}

// RemoteAddr returns the address passed to Dial.
func (c *Conn) RemoteAddr() string {
	return c.addr
}

// Send writes b in full. Any write error closes the connection.
func (c *Conn) Send(b []byte) error {
	if !c.Connected() {
		return fmt.Errorf("send: %w", ErrUnexpectedDisconnect)
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout)); err != nil {
		c.Disconnect()
		return fmt.Errorf("setting write deadline: %w", err)
	}
	if _, err := c.conn.Write(b); err != nil {
		c.Disconnect()
		return fmt.Errorf("writing %d bytes to %s: %w", len(b), c.addr, err)
	}
	return nil
}

// PollReceive drains every byte currently available into the receive buffer.
// It returns the number of bytes appended; 0 with a nil error means nothing
// arrived since the last call.
//
// Peer close, I/O errors and buffer overflow are fatal: the connection is
// closed before the error is returned.
func (c *Conn) PollReceive() (int, error) {
	if !c.Connected() {
		return 0, fmt.Errorf("receive: %w", ErrUnexpectedDisconnect)
	}

	total := 0
	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.opts.PollWait)); err != nil {
			c.Disconnect()
			return total, fmt.Errorf("setting read deadline: %w", err)
		}

		n, err := c.conn.Read(c.chunk)
		if n > 0 {
			if len(c.buf)+n > c.opts.MaxBuffer {
				size := len(c.buf) + n
				c.Disconnect()
				return total, fmt.Errorf("%w: %d bytes exceeds %d: %w",
					ErrBufferOverflow, size, c.opts.MaxBuffer, ErrUnexpectedDisconnect)
			}
			c.buf = append(c.buf, c.chunk[:n]...)
			total += n
		}

		switch {
		case err == nil:
			if n == 0 {
				// Read без ошибки и без данных: считаем закрытием.
				c.Disconnect()
				return total, fmt.Errorf("reading from %s: %w", c.addr, ErrUnexpectedDisconnect)
			}
			continue
		case errors.Is(err, os.ErrDeadlineExceeded):
			return total, nil
		case errors.Is(err, io.EOF):
			c.Disconnect()
			return total, fmt.Errorf("peer %s closed connection: %w", c.addr, ErrUnexpectedDisconnect)
		default:
			c.Disconnect()
			return total, fmt.Errorf("reading from %s: %w", c.addr, err)
		}
	}
}

// Buffer returns the unconsumed received bytes. The slice is valid until the
// next PollReceive, Consume or Disconnect.
func (c *Conn) Buffer() []byte {
	if c == nil {
		return nil
	}
	return c.buf
}

// Consume drops n bytes from the front of the receive buffer.
func (c *Conn) Consume(n int) {
	if n <= 0 {
		return
	}
	if n >= len(c.buf) {
		c.buf = c.buf[:0]
		return
	}
	c.buf = append(c.buf[:0], c.buf[n:]...)
}

// Disconnect closes the socket and clears the buffer. It is idempotent.
func (c *Conn) Disconnect() {
	if c == nil || c.conn == nil {
		return
	}
	if tcp, ok := c.conn.(*net.TCPConn); ok {
		_ = tcp.CloseRead()
		_ = tcp.CloseWrite()
	}
	_ = c.conn.Close()
	c.conn = nil
	c.buf = nil

	slog.Debug("disconnected", "addr", c.addr)
}
