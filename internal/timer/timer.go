package timer

import (
	"sync/atomic"
	"time"
)

// Resolution is how often the clock is updated. It's precise enough both for I/O
// deadlines and for the Date header.
const Resolution = 500 * time.Millisecond

var unixMilli = new(atomic.Int64)

// Now returns the coarse current time, lagging behind the real one by at most
// Resolution.
func Now() time.Time {
	return time.UnixMilli(unixMilli.Load())
}

func init() {
	unixMilli.Store(time.Now().UnixMilli())

	go func() {
		ticker := time.NewTicker(Resolution)
		for now := range ticker.C {
			unixMilli.Store(now.UnixMilli())
		}
	}()
}
