package http

import (
	"strings"

	"github.com/indigo-web/statica/http/headers"
	"github.com/indigo-web/statica/http/method"
	"github.com/indigo-web/statica/http/proto"
)

// Request is a single parsed HTTP request. It's produced once per connection and
// must not be modified after parsing has been completed.
type Request struct {
	Method method.Method
	Proto  proto.Proto
	// URI is kept exactly as received: not unescaped, query included.
	URI     string
	Headers headers.Headers
	// Body holds whatever bytes followed the header terminator in the received data.
	Body []byte
}

func NewRequest() *Request {
	return &Request{
		Headers: headers.New(),
	}
}

// Path returns the URI without the query part.
func (r *Request) Path() string {
	return StripQuery(r.URI)
}

// StripQuery cuts everything starting from the first question mark off.
func StripQuery(uri string) string {
	path, _, _ := strings.Cut(uri, "?")
	return path
}
