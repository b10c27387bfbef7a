package requestgen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/statica/http/headers"
)

// Headers generates n headers, the last one always being the host.
func Headers(n int) headers.Headers {
	hdrs := headers.New()

	for i := 0; i < n-1; i++ {
		hdrs.Set("some-random-header-name-nobody-cares-about"+strconv.Itoa(i), strings.Repeat("b", 100))
	}

	hdrs.Set("host", "localhost")

	return hdrs
}

func HeadersBlock(hdrs headers.Headers) (buff []byte) {
	for key, value := range hdrs {
		buff = append(buff, key+": "+value+"\r\n"...)
	}

	return buff
}

// Generate renders a complete HTTP/1.1 request with the blank line in the end.
func Generate(method, uri string, hdrs headers.Headers) (request []byte) {
	request = append(request, method+" "+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}

// Disperse splits the data into chunks of at most n bytes each.
func Disperse(data []byte, n int) (parts [][]byte) {
	for len(data) > n {
		parts = append(parts, data[:n])
		data = data[n:]
	}

	return append(parts, data)
}
