package http1

import (
	"strconv"
	"time"

	"github.com/indigo-web/statica/http"
	"github.com/indigo-web/statica/http/status"
	"github.com/indigo-web/statica/internal/timer"
	"github.com/indigo-web/utils/strcomp"
)

// dateFormat is the IMF-fixdate of RFC 9110, always in GMT.
const dateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

const (
	contentLength = "Content-Length"
	date          = "Date"
	server        = "Server"
)

// Serializer renders responses into a reusable buffer.
type Serializer struct {
	buff   []byte
	server string
	clock  func() time.Time
}

func NewSerializer(buff []byte, serverName string) *Serializer {
	return &Serializer{
		buff:   buff[:0],
		server: serverName,
		clock:  timer.Now,
	}
}

// Render renders the status line, the headers and, if withBody is set, the body of the
// response. Content-Length, Date and Server are added unless the response already has
// them. The returned slice is valid until the next call.
func (s *Serializer) Render(response *http.Response, withBody bool) []byte {
	s.buff = s.buff[:0]
	s.buff = append(s.buff, response.Proto.String()...)
	s.sp()
	s.buff = strconv.AppendUint(s.buff, uint64(response.Code), 10)
	s.sp()
	s.buff = append(s.buff, status.Text(response.Code)...)
	s.crlf()

	var hasLength, hasDate, hasServer bool
	for _, header := range response.Headers {
		switch {
		case strcomp.EqualFold(header.Key, contentLength):
			hasLength = true
		case strcomp.EqualFold(header.Key, date):
			hasDate = true
		case strcomp.EqualFold(header.Key, server):
			hasServer = true
		}

		s.header(header.Key, header.Value)
	}

	if !hasLength {
		s.buff = append(s.buff, contentLength+": "...)
		s.buff = strconv.AppendInt(s.buff, response.ContentLength, 10)
		s.crlf()
	}

	if !hasDate {
		s.buff = append(s.buff, date+": "...)
		s.buff = s.clock().UTC().AppendFormat(s.buff, dateFormat)
		s.crlf()
	}

	if !hasServer && len(s.server) > 0 {
		s.header(server, s.server)
	}

	s.crlf()

	if withBody {
		s.buff = append(s.buff, response.Body...)
	}

	return s.buff
}

func (s *Serializer) header(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, ':', ' ')
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, '\r', '\n')
}

// RenderRequest renders the request back into its wire form. Headers are written
// with their lowercased names, the body is appended as is.
func RenderRequest(buff []byte, request *http.Request) []byte {
	buff = append(buff, request.Method.String()...)
	buff = append(buff, ' ')
	buff = append(buff, request.URI...)
	buff = append(buff, ' ')
	buff = append(buff, request.Proto.String()...)
	buff = append(buff, crlf...)

	for key, value := range request.Headers {
		buff = append(buff, key...)
		buff = append(buff, ':', ' ')
		buff = append(buff, value...)
		buff = append(buff, crlf...)
	}

	buff = append(buff, crlf...)
	return append(buff, request.Body...)
}
