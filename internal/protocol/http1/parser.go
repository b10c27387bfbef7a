package http1

import (
	"bytes"
	"fmt"

	"github.com/indigo-web/statica/http"
)

var (
	crlf     = []byte("\r\n")
	crlfcrlf = []byte("\r\n\r\n")
)

// Parse parses a whole buffered request: the request line, the header block and
// whatever follows the header terminator, which is kept as the body. The request
// line must be terminated by CRLF and the header block by an empty line.
func Parse(data []byte) (*http.Request, error) {
	lineEnd := bytes.Index(data, crlf)
	if lineEnd == -1 {
		return nil, fmt.Errorf("%w: expected \\r\\n after the request line", ErrMalformedRequestLine)
	}

	// the terminator may immediately follow the request line, so it's searched
	// starting from the request line CRLF itself
	terminator := bytes.Index(data[lineEnd:], crlfcrlf)
	if terminator == -1 {
		return nil, ErrMissingTerminator
	}

	terminator += lineEnd
	request := http.NewRequest()
	if err := parseRequestLine(request, data[:lineEnd]); err != nil {
		return nil, err
	}

	var block []byte
	if terminator > lineEnd {
		block = data[lineEnd+len(crlf) : terminator]
	}

	if err := parseHeaders(request.Headers, block); err != nil {
		return nil, err
	}

	if body := data[terminator+len(crlfcrlf):]; len(body) > 0 {
		request.Body = body
	}

	return request, nil
}
