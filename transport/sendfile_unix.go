//go:build linux || darwin || freebsd

package transport

import (
	"errors"
	"io"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// maxSendfileChunk caps a single sendfile call. Linux refuses to transfer more than
// 0x7ffff000 bytes at once anyway.
const maxSendfileChunk = 1 << 30

// sendFile transfers the file right from its descriptor into the socket. The loop is
// driven by the runtime poller: on EAGAIN the callback returns false and gets called
// again as soon as the socket becomes writable.
func sendFile(conn *net.TCPConn, file *os.File, size int64) (written int64, err error) {
	if size == 0 {
		return 0, nil
	}

	rawConn, err := conn.SyscallConn()
	if err != nil {
		return 0, err
	}

	fileConn, err := file.SyscallConn()
	if err != nil {
		return 0, err
	}

	var (
		offset  int64
		sendErr error
	)

	ctrlErr := fileConn.Control(func(src uintptr) {
		err = rawConn.Write(func(dst uintptr) bool {
			for offset < size {
				n, err := sendfileChunk(int(dst), int(src), &offset, int(min(size-offset, maxSendfileChunk)))
				switch {
				case errors.Is(err, unix.EAGAIN):
					return false
				case errors.Is(err, unix.EINTR):
					continue
				case err != nil:
					sendErr = err
					return true
				case n == 0:
					// the file has been truncated since its size was taken
					sendErr = io.ErrUnexpectedEOF
					return true
				}
			}

			return true
		})
	})

	switch {
	case ctrlErr != nil:
		return offset, ctrlErr
	case err != nil:
		return offset, err
	default:
		return offset, sendErr
	}
}
