package transport

import (
	"errors"
	"net"
	"os"
	"time"

	"github.com/indigo-web/statica/http/status"
)

// Listener is the server side of the socket contract: it's bound to an address once,
// switched into listening mode and then hands out a Client per accepted connection.
type Listener interface {
	Bind(addr string) error
	Listen() error
	Accept() (Client, error)
	Addr() net.Addr
	Close() error
}

// Client is a single connection. It's owned by exactly one goroutine during its whole
// lifetime, so implementations aren't required to be safe for concurrent use.
type Client interface {
	// Receive blocks until the peer either closes the connection or the read bytes
	// contain the header terminator, and returns everything read so far.
	Receive() ([]byte, error)
	// Send writes the whole data or fails with ErrShortWrite.
	Send(data []byte) error
	// SendFile transfers size bytes of the file from its beginning, avoiding copying them
	// through user space where the platform allows it.
	SendFile(file *os.File, size int64) error
	Remote() net.Addr
	Close() error
}

type Config struct {
	// ReadBufferSize is the size of a single read from the socket.
	ReadBufferSize int
	// MaxRequestSize limits the number of bytes Receive accumulates.
	MaxRequestSize int
	// ReadTimeout bounds the whole Receive call. Zero disables it.
	ReadTimeout time.Duration
	// WriteTimeout bounds each Send and SendFile call. Zero disables it.
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		ReadBufferSize: 1024,
		MaxRequestSize: 64 * 1024,
		ReadTimeout:    30 * time.Second,
	}
}

var (
	ErrBind            = errors.New("unable to bind socket")
	ErrListen          = errors.New("listen failed")
	ErrAccept          = errors.New("error while accepting socket")
	ErrConnect         = errors.New("unable to connect socket")
	ErrShortWrite      = errors.New("bytes sent don't match data size")
	ErrSendFile        = errors.New("sendfile failed")
	ErrNotBound        = errors.New("socket is not bound")
	ErrRequestTooLarge = status.NewError(status.RequestHeaderFieldsTooLarge, "request is too large")
)
