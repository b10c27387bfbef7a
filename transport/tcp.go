package transport

import (
	"errors"
	"fmt"
	"net"
	"os"
)

var _ Listener = new(TCP)

// TCP is the listening socket. Go always sets SO_REUSEADDR on listening sockets on
// unix platforms, so a restarted server can rebind the port at once.
type TCP struct {
	l         *net.TCPListener
	cfg       Config
	listening bool
}

func NewTCP(cfg Config) *TCP {
	return &TCP{cfg: cfg}
}

// Bind takes the address. Binding and switching into listening mode are a single
// operation in Go, so the socket accepts connections into the backlog right after
// Bind succeeds; however Accept refuses to work until Listen is called.
func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBind, err)
	}

	t.l, err = net.ListenTCP("tcp", tcpaddr)
	if err != nil {
		var syscallErr *os.SyscallError
		if errors.As(err, &syscallErr) && syscallErr.Syscall == "listen" {
			return fmt.Errorf("%w: %w", ErrListen, err)
		}

		return fmt.Errorf("%w: %w", ErrBind, err)
	}

	return nil
}

func (t *TCP) Listen() error {
	if t.l == nil {
		return fmt.Errorf("%w: %w", ErrListen, ErrNotBound)
	}

	t.listening = true
	return nil
}

// Accept blocks until a peer connects or the socket is closed. In the latter case the
// returned error wraps net.ErrClosed.
func (t *TCP) Accept() (Client, error) {
	if !t.listening {
		return nil, fmt.Errorf("%w: %w", ErrAccept, ErrNotBound)
	}

	conn, err := t.l.AcceptTCP()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAccept, err)
	}

	return NewClient(conn, t.cfg), nil
}

// Addr returns the bound address, or nil if the socket isn't bound yet.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

func (t *TCP) Close() error {
	if t.l == nil {
		return nil
	}

	return t.l.Close()
}

// Connect dials the address and returns a connection-scoped client, the same kind
// Accept hands out.
func Connect(addr string, cfg Config) (Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	return NewClient(conn.(*net.TCPConn), cfg), nil
}
