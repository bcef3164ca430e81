package testutil

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/ronet/internal/constants"
)

// ListenTCP создаёт TCP listener на случайном порту для тестов.
// Возвращает listener и адрес в формате "host:port".
// Автоматически закрывает listener при завершении теста.
func ListenTCP(t testing.TB) (net.Listener, string) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create TCP listener: %v", err)
	}

	t.Cleanup(func() {
		_ = listener.Close()
	})

	return listener, listener.Addr().String()
}

// FakeServer принимает TCP подключения клиента и отдаёт тесту серверную сторону.
// Сервер сам ничего не отправляет: тест пишет и читает байты напрямую.
type FakeServer struct {
	Addr string

	ln    net.Listener
	conns chan net.Conn
	g     errgroup.Group
}

// NewFakeServer запускает accept loop. Всё закрывается при завершении теста.
func NewFakeServer(t testing.TB) *FakeServer {
	t.Helper()

	ln, addr := ListenTCP(t)
	s := &FakeServer{
		Addr:  addr,
		ln:    ln,
		conns: make(chan net.Conn, 4),
	}

	s.g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return nil
				}
				return err
			}
			s.conns <- conn
		}
	})

	t.Cleanup(func() {
		_ = ln.Close()
		if err := s.g.Wait(); err != nil {
			t.Errorf("fake server accept loop: %v", err)
		}
		close(s.conns)
		for conn := range s.conns {
			_ = conn.Close()
		}
	})

	return s
}

// Accept ждёт следующее подключение клиента.
func (s *FakeServer) Accept(t testing.TB) net.Conn {
	t.Helper()

	select {
	case conn := <-s.conns:
		t.Cleanup(func() { _ = conn.Close() })
		return conn
	case <-time.After(constants.TestEventTimeout):
		t.Fatalf("no client connected to %s within %v", s.Addr, constants.TestEventTimeout)
		return nil
	}
}

// ReadN читает ровно n байт, отправленных клиентом.
func ReadN(t testing.TB, conn net.Conn, n int) []byte {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(constants.TestEventTimeout)); err != nil {
		t.Fatalf("setting read deadline: %v", err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatalf("reading %d bytes from client: %v", n, err)
	}
	return buf
}

// Write отправляет байты клиенту.
func Write(t testing.TB, conn net.Conn, b []byte) {
	t.Helper()

	if err := conn.SetWriteDeadline(time.Now().Add(constants.TestEventTimeout)); err != nil {
		t.Fatalf("setting write deadline: %v", err)
	}
	if _, err := conn.Write(b); err != nil {
		t.Fatalf("writing %d bytes to client: %v", len(b), err)
	}
}

// UnusedAddr возвращает адрес, на котором гарантированно никто не слушает.
func UnusedAddr(t testing.TB) string {
	t.Helper()

	ln, addr := ListenTCP(t)
	_ = ln.Close()
	return addr
}
