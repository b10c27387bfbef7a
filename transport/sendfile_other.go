//go:build !linux && !darwin && !freebsd

package transport

import (
	"io"
	"net"
	"os"
)

// sendFile falls back to copying where no sendfile primitive is wired. The
// TCPConn's ReadFrom still picks the best transfer the platform offers.
func sendFile(conn *net.TCPConn, file *os.File, size int64) (int64, error) {
	return io.Copy(conn, io.NewSectionReader(file, 0, size))
}
