package transport

import "golang.org/x/sys/unix"

// sendfileChunk makes a single sendfile(2) call. The kernel advances the offset by
// itself.
func sendfileChunk(dst, src int, offset *int64, count int) (int, error) {
	return unix.Sendfile(dst, src, offset, count)
}
