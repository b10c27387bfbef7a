package dummy

import (
	"bytes"
	"io"
	"net"
	"os"

	"github.com/indigo-web/statica/transport"
)

var _ transport.Client = new(Client)

// Client is an in-memory connection. Receive hands out the data it was initialised
// with, everything sent is journaled. SendFile copies the file, so no real socket is
// required.
type Client struct {
	data     []byte
	written  []byte
	received bool
	closed   int
	sendErr  error
	remote   net.Addr
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data:   bytes.Join(data, nil),
		remote: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 16100},
	}
}

// FailSend makes every consequent Send and SendFile call fail with the error.
func (c *Client) FailSend(err error) *Client {
	c.sendErr = err
	return c
}

func (c *Client) Receive() ([]byte, error) {
	if c.received {
		return nil, nil
	}

	c.received = true
	return c.data, nil
}

func (c *Client) Send(data []byte) error {
	if c.sendErr != nil {
		return c.sendErr
	}

	c.written = append(c.written, data...)
	return nil
}

func (c *Client) SendFile(file *os.File, size int64) error {
	if c.sendErr != nil {
		return c.sendErr
	}

	content, err := io.ReadAll(io.NewSectionReader(file, 0, size))
	if err != nil {
		return err
	}

	c.written = append(c.written, content...)
	return nil
}

func (c *Client) Remote() net.Addr {
	return c.remote
}

func (c *Client) Close() error {
	c.closed++
	return nil
}

// Written returns everything sent so far.
func (c *Client) Written() string {
	return string(c.written)
}

// Closed returns how many times the client has been closed.
func (c *Client) Closed() int {
	return c.closed
}
