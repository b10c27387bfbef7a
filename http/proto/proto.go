package proto

type Proto uint8

const (
	Unknown Proto = iota
	HTTP09
	HTTP10
	HTTP11
	HTTP2
	HTTP3
)

var versions = [...]string{
	Unknown: "",
	HTTP09:  "HTTP/0.9",
	HTTP10:  "HTTP/1.0",
	HTTP11:  "HTTP/1.1",
	HTTP2:   "HTTP/2",
	HTTP3:   "HTTP/3",
}

// String returns the protocol token as it's spelled on the wire
func (p Proto) String() string {
	if int(p) >= len(versions) {
		return ""
	}

	return versions[p]
}

// Parse maps a (major, minor) pair onto the closed set of known versions. 2 and 3
// are recognized syntactically only, nothing about their framing is implemented.
func Parse(major, minor int) Proto {
	switch {
	case major == 0 && minor == 9:
		return HTTP09
	case major == 1 && minor == 0:
		return HTTP10
	case major == 1 && minor == 1:
		return HTTP11
	case major == 2 && minor == 0:
		return HTTP2
	case major == 3 && minor == 0:
		return HTTP3
	}

	return Unknown
}

// Response returns the version a response to a request of protocol p is written with.
func (p Proto) Response() Proto {
	if p == HTTP10 {
		return HTTP10
	}

	return HTTP11
}
