package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/indigo-web/statica/internal/timer"
	"github.com/indigo-web/utils/buffer"
)

var crlfcrlf = []byte("\r\n\r\n")

var _ Client = new(client)

type client struct {
	conn *net.TCPConn
	cfg  Config
	buff []byte
}

func NewClient(conn *net.TCPConn, cfg Config) Client {
	return &client{
		conn: conn,
		cfg:  cfg,
		buff: make([]byte, cfg.ReadBufferSize),
	}
}

func (c *client) Receive() ([]byte, error) {
	if c.cfg.ReadTimeout > 0 {
		if err := c.conn.SetReadDeadline(timer.Now().Add(c.cfg.ReadTimeout)); err != nil {
			return nil, err
		}
	}

	received := buffer.New(len(c.buff), c.cfg.MaxRequestSize)
	// the terminator may be split among two reads, so the last 3 bytes of the previous
	// chunk are searched together with the next one
	var window []byte

	for {
		n, err := c.conn.Read(c.buff)
		if n > 0 {
			chunk := c.buff[:n]
			if !received.Append(chunk) {
				return nil, ErrRequestTooLarge
			}

			window = append(window, chunk...)
			if bytes.Contains(window, crlfcrlf) {
				return received.Finish(), nil
			}

			if len(window) > len(crlfcrlf)-1 {
				window = append(window[:0], window[len(window)-len(crlfcrlf)+1:]...)
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			return received.Finish(), nil
		case err != nil:
			return nil, err
		}
	}
}

func (c *client) Send(data []byte) error {
	if err := c.setWriteDeadline(); err != nil {
		return err
	}

	n, err := c.conn.Write(data)
	if err != nil {
		return err
	}

	if n != len(data) {
		return fmt.Errorf("%w: %d out of %d", ErrShortWrite, n, len(data))
	}

	return nil
}

func (c *client) SendFile(file *os.File, size int64) error {
	if err := c.setWriteDeadline(); err != nil {
		return err
	}

	written, err := sendFile(c.conn, file, size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFile, err)
	}

	if written != size {
		return fmt.Errorf("%w: sent %d out of %d bytes", ErrSendFile, written, size)
	}

	return nil
}

func (c *client) setWriteDeadline() error {
	if c.cfg.WriteTimeout <= 0 {
		return nil
	}

	return c.conn.SetWriteDeadline(timer.Now().Add(c.cfg.WriteTimeout))
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *client) Close() error {
	return c.conn.Close()
}
