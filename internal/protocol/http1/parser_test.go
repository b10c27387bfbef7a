package http1

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/statica/http"
	"github.com/indigo-web/statica/http/method"
	"github.com/indigo-web/statica/http/proto"
	"github.com/indigo-web/statica/http/status"
	"github.com/indigo-web/statica/internal/requestgen"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) *http.Request {
	request, err := Parse([]byte(raw))
	require.NoError(t, err)
	return request
}

func parseErr(raw string) error {
	_, err := Parse([]byte(raw))
	return err
}

func TestParser_RequestLine(t *testing.T) {
	t.Run("simple GET", func(t *testing.T) {
		request := parse(t, "GET /index.html HTTP/1.1\r\nHost: localhost\r\nUser-Agent: curl/7.68.0\r\n\r\n")
		require.Equal(t, method.GET, request.Method)
		require.Equal(t, "/index.html", request.URI)
		require.Equal(t, proto.HTTP11, request.Proto)
		require.Equal(t, "localhost", request.Headers.Value("host"))
		require.Equal(t, "curl/7.68.0", request.Headers.Value("user-agent"))
		require.Empty(t, request.Body)
	})

	t.Run("no headers", func(t *testing.T) {
		request := parse(t, "GET / HTTP/1.1\r\n\r\n")
		require.Equal(t, "/", request.URI)
		require.Zero(t, request.Headers.Len())
	})

	t.Run("query is kept", func(t *testing.T) {
		request := parse(t, "GET /search?q=test&lang=en HTTP/1.1\r\nHost: x\r\n\r\n")
		require.Equal(t, "/search?q=test&lang=en", request.URI)
		require.Equal(t, "/search", request.Path())
	})

	t.Run("body", func(t *testing.T) {
		request := parse(t, "POST /submit HTTP/1.1\r\nHost: localhost\r\nContent-Length: 11\r\n\r\nHello world")
		require.Equal(t, method.POST, request.Method)
		require.Equal(t, "Hello world", string(request.Body))
	})

	t.Run("all methods", func(t *testing.T) {
		for _, m := range method.List {
			request := parse(t, m.String()+" / HTTP/1.1\r\n\r\n")
			require.Equal(t, m, request.Method)
		}
	})

	t.Run("all versions", func(t *testing.T) {
		versions := map[string]proto.Proto{
			"HTTP/0.9": proto.HTTP09,
			"HTTP/1.0": proto.HTTP10,
			"HTTP/1.1": proto.HTTP11,
			"HTTP/2":   proto.HTTP2,
			"HTTP/3":   proto.HTTP3,
			"HTTP/2.0": proto.HTTP2,
		}

		for version, want := range versions {
			request := parse(t, "GET / "+version+"\r\nHost: localhost\r\n\r\n")
			require.Equal(t, want, request.Proto, version)
		}
	})

	t.Run("extra whitespace", func(t *testing.T) {
		request := parse(t, "GET   /a \t HTTP/1.0  \t\r\n\r\n")
		require.Equal(t, method.GET, request.Method)
		require.Equal(t, "/a", request.URI)
		require.Equal(t, proto.HTTP10, request.Proto)
	})

	t.Run("every allowed URI character", func(t *testing.T) {
		uri := "/AZaz09-._~!$&'()*+,;=:@/?"
		request := parse(t, "GET "+uri+" HTTP/1.1\r\n\r\n")
		require.Equal(t, uri, request.URI)
	})
}

func TestParser_RequestLineErrors(t *testing.T) {
	t.Run("unknown method", func(t *testing.T) {
		err := parseErr("FOO / HTTP/1.1\r\nHost: x\r\n\r\n")
		require.ErrorIs(t, err, ErrUnknownMethod)
		require.Equal(t, status.BadRequest, status.CodeOf(err))
	})

	t.Run("lowercase method", func(t *testing.T) {
		require.ErrorIs(t, parseErr("get / HTTP/1.1\r\n\r\n"), ErrUnknownMethod)
	})

	t.Run("missing URI and version", func(t *testing.T) {
		require.ErrorIs(t, parseErr("GET\r\n\r\n"), ErrMalformedRequestLine)
		require.ErrorIs(t, parseErr("GET \r\n\r\n"), ErrMalformedRequestLine)
	})

	t.Run("missing version", func(t *testing.T) {
		require.ErrorIs(t, parseErr("GET /\r\n\r\n"), ErrMalformedRequestLine)
		require.ErrorIs(t, parseErr("GET / \r\n\r\n"), ErrMalformedRequestLine)
	})

	t.Run("empty request line", func(t *testing.T) {
		require.ErrorIs(t, parseErr("\r\nHost: x\r\n\r\n"), ErrMalformedRequestLine)
	})

	t.Run("empty request", func(t *testing.T) {
		require.ErrorIs(t, parseErr(""), ErrMalformedRequestLine)
	})

	t.Run("missing request line CRLF", func(t *testing.T) {
		require.ErrorIs(t, parseErr("GET / HTTP/1.1"), ErrMalformedRequestLine)
	})

	t.Run("invalid URI character", func(t *testing.T) {
		for _, uri := range []string{"/a\"b", "/<script>", "/a%20b", "/a#frag", "/\x7f"} {
			require.ErrorIs(t, parseErr("GET "+uri+" HTTP/1.1\r\n\r\n"), ErrInvalidURIChar, uri)
		}
	})

	t.Run("malformed version", func(t *testing.T) {
		for _, version := range []string{
			"HTTP/1.", "HTTP/", "HTTP/.", "HTTP/.1", "HTTP/ 1.1", "HTTPS/1.1", "http/1.1", "HTT", "XTTP/1.1",
		} {
			err := parseErr("GET / " + version + "\r\nHost: localhost\r\n\r\n")
			require.ErrorIs(t, err, ErrMalformedVersion, version)
		}
	})

	t.Run("mismatch names the expected character", func(t *testing.T) {
		err := parseErr("GET / HXTP/1.1\r\n\r\n")
		require.ErrorIs(t, err, ErrMalformedVersion)
		require.Contains(t, err.Error(), "expected 'T' but got 'X'")
	})

	t.Run("trailing garbage", func(t *testing.T) {
		for _, version := range []string{"HTTP/1.1  df", "HTTP/1.1.1", "HTTP/1.1x", "HTTP/111.111"} {
			err := parseErr("GET / " + version + "\r\nHost: localhost\r\n\r\n")
			require.ErrorIs(t, err, ErrTrailingGarbage, version)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		for _, version := range []string{"HTTP/0", "HTTP/1.2", "HTTP/4.0", "HTTP/99999999999999999999.0"} {
			err := parseErr("GET / " + version + "\r\n\r\n")
			require.ErrorIs(t, err, ErrUnsupportedVersion, version)
			require.Equal(t, status.HTTPVersionNotSupported, status.CodeOf(err))
		}
	})
}

func TestParser_Headers(t *testing.T) {
	t.Run("case insensitive names", func(t *testing.T) {
		lower := parse(t, "GET / HTTP/1.1\r\nHost: a\r\n\r\n")
		upper := parse(t, "GET / HTTP/1.1\r\nHOST: a\r\n\r\n")
		require.Equal(t, lower.Headers["host"], upper.Headers["host"])
		require.Equal(t, "a", upper.Headers["host"])
	})

	t.Run("last write wins", func(t *testing.T) {
		request := parse(t, "GET / HTTP/1.1\r\nX-Test: one\r\nX-Test: two\r\n\r\n")
		require.Equal(t, "two", request.Headers.Value("x-test"))
		require.Equal(t, 1, request.Headers.Len())
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		request := parse(t, "GET /test HTTP/1.1\r\nHost:    example.com  \r\nUser-Agent:\tcurl/7.68.0 \t\r\n\r\n")
		require.Equal(t, "example.com", request.Headers.Value("host"))
		require.Equal(t, "curl/7.68.0", request.Headers.Value("user-agent"))
	})

	t.Run("trailing whitespace of the last header", func(t *testing.T) {
		request := parse(t, "GET / HTTP/1.1\r\nHost: example.com   \r\n\r\n")
		require.Equal(t, "example.com", request.Headers.Value("host"))
	})

	t.Run("inner whitespace is kept", func(t *testing.T) {
		request := parse(t, "GET / HTTP/1.1\r\nUser-Agent: Mozilla/5.0 (X11;  Linux)\r\nAccept: */*\r\n\r\n")
		require.Equal(t, "Mozilla/5.0 (X11;  Linux)", request.Headers.Value("user-agent"))
		require.Equal(t, "*/*", request.Headers.Value("accept"))
	})

	t.Run("no space after colon", func(t *testing.T) {
		request := parse(t, "GET / HTTP/1.1\r\nHost:localhost\r\n\r\n")
		require.Equal(t, "localhost", request.Headers.Value("host"))
	})

	t.Run("empty value", func(t *testing.T) {
		request := parse(t, "GET / HTTP/1.1\r\nX-Empty-Header:\r\nHost: localhost\r\n\r\n")
		value, found := request.Headers.Get("x-empty-header")
		require.True(t, found)
		require.Empty(t, value)
		require.Equal(t, "localhost", request.Headers.Value("host"))
	})

	t.Run("empty value of the last header", func(t *testing.T) {
		request := parse(t, "GET / HTTP/1.1\r\nX-Empty:  \r\n\r\n")
		value, found := request.Headers.Get("x-empty")
		require.True(t, found)
		require.Empty(t, value)
	})

	t.Run("long value", func(t *testing.T) {
		long := strings.Repeat("x", 10000)
		request := parse(t, "GET / HTTP/1.1\r\nX-Long-Header: "+long+"\r\n\r\n")
		require.Equal(t, long, request.Headers.Value("x-long-header"))
	})

	t.Run("many random headers", func(t *testing.T) {
		names := make([]string, 50)
		var raw strings.Builder
		raw.WriteString("GET / HTTP/1.1\r\n")
		for i := range names {
			names[i] = uniuri.NewLen(16)
			fmt.Fprintf(&raw, "%s: %s\r\n", names[i], strings.ToUpper(names[i]))
		}
		raw.WriteString("\r\n")

		request := parse(t, raw.String())
		for _, name := range names {
			require.Equal(t, strings.ToUpper(name), request.Headers.Value(name))
			require.Contains(t, request.Headers, strings.ToLower(name))
		}
	})
}

func TestParser_HeaderErrors(t *testing.T) {
	t.Run("whitespace in name", func(t *testing.T) {
		require.ErrorIs(t, parseErr("GET / HTTP/1.1\r\nX Bad: value\r\n\r\n"), ErrInvalidHeaderName)
		require.ErrorIs(t, parseErr("GET / HTTP/1.1\r\nHost : value\r\n\r\n"), ErrInvalidHeaderName)
		require.ErrorIs(t, parseErr("GET / HTTP/1.1\r\nHost\t: value\r\n\r\n"), ErrInvalidHeaderName)
	})

	t.Run("no colon", func(t *testing.T) {
		require.ErrorIs(t, parseErr("GET / HTTP/1.1\r\nHost\r\nAccept: */*\r\n\r\n"), ErrInvalidHeaderName)
		require.ErrorIs(t, parseErr("GET / HTTP/1.1\r\nHost\r\n\r\n"), ErrInvalidHeaderName)
	})

	t.Run("empty name", func(t *testing.T) {
		require.ErrorIs(t, parseErr("GET / HTTP/1.1\r\n: value\r\n\r\n"), ErrInvalidHeaderName)
	})

	t.Run("bare CR", func(t *testing.T) {
		require.ErrorIs(t, parseErr("GET / HTTP/1.1\r\nA: b\rC: d\r\n\r\n"), ErrMalformedHeaderLine)
	})

	t.Run("missing terminator", func(t *testing.T) {
		err := parseErr("GET / HTTP/1.1\r\nHost: localhost\r\nUser-Agent: curl/7.68.0\r\n")
		require.ErrorIs(t, err, ErrMissingTerminator)
		require.Equal(t, status.BadRequest, status.CodeOf(err))
	})
}

func BenchmarkParse(b *testing.B) {
	for _, n := range []int{1, 5, 20} {
		data := requestgen.Generate("GET", "/"+strings.Repeat("a", 500), requestgen.Headers(n))

		b.Run(fmt.Sprintf("with %d headers", n), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = Parse(data)
			}
		})
	}
}
