//go:build darwin || freebsd

package transport

import "golang.org/x/sys/unix"

// sendfileChunk makes a single sendfile(2) call. BSD-style sendfile reports the
// transferred amount via an out-parameter and leaves the offset untouched, even when
// it fails with EAGAIN after a partial write, so it's advanced here.
func sendfileChunk(dst, src int, offset *int64, count int) (int, error) {
	n, err := unix.Sendfile(dst, src, offset, count)
	if n > 0 {
		*offset += int64(n)
	}

	return n, err
}
