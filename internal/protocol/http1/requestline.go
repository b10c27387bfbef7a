package http1

import (
	"fmt"

	"github.com/indigo-web/statica/http"
	"github.com/indigo-web/statica/http/method"
	"github.com/indigo-web/statica/http/proto"
	"github.com/indigo-web/utils/uf"
)

// versionLimit saturates major version accumulation, so an arbitrary long digit
// sequence can't overflow. Anything that big is unsupported anyway.
const versionLimit = 1000

// uriChars is a lookup table of characters allowed in the request URI: ALPHA, DIGIT
// and the unreserved, sub-delims and pchar punctuation of RFC 3986.
var uriChars = func() (table [256]bool) {
	for c := 'a'; c <= 'z'; c++ {
		table[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		table[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		table[c] = true
	}
	for _, c := range "-._~!$&'()*+,;=:@/?" {
		table[c] = true
	}

	return table
}()

type requestLineTransition func(p *requestLineParser, c byte) error

// requestLineTransitions is indexed by the current state. Each transition consumes
// exactly one character. States that end on a character that isn't theirs hand the
// very same character over to the next state instead of consuming it twice.
var requestLineTransitions = [...]requestLineTransition{
	eMethod:             (*requestLineParser).method,
	eSpacesAfterMethod:  (*requestLineParser).spacesAfterMethod,
	eURI:                (*requestLineParser).uri,
	eSpacesAfterURI:     (*requestLineParser).spacesAfterURI,
	eVersionH:           expect('H', eVersionHT),
	eVersionHT:          expect('T', eVersionHTT),
	eVersionHTT:         expect('T', eVersionHTTP),
	eVersionHTTP:        expect('P', eVersionSlash),
	eVersionSlash:       expect('/', eVersionMajorStart),
	eVersionMajorStart:  (*requestLineParser).versionMajorStart,
	eVersionMajor:       (*requestLineParser).versionMajor,
	eVersionDot:         (*requestLineParser).versionMinor,
	eEndOfVersion:       (*requestLineParser).endOfVersion,
	eSpacesAfterVersion: (*requestLineParser).spacesAfterVersion,
}

// requestLineParser is a single-pass automaton over the request line, CRLF excluded.
type requestLineParser struct {
	request      *http.Request
	line         []byte
	pos          int
	uriBegin     int
	major, minor int
	state        requestLineState
}

// parseRequestLine fills method, URI and protocol of the request.
func parseRequestLine(request *http.Request, line []byte) error {
	if len(line) == 0 {
		return fmt.Errorf("%w: empty request line", ErrMalformedRequestLine)
	}

	p := requestLineParser{
		request: request,
		line:    line,
		state:   eMethod,
	}

	for ; p.pos < len(line); p.pos++ {
		if err := requestLineTransitions[p.state](&p, line[p.pos]); err != nil {
			return err
		}
	}

	return p.finish()
}

func (p *requestLineParser) method(c byte) error {
	if isSpaceOrTab(c) {
		p.request.Method = method.Parse(uf.B2S(p.line[:p.pos]))
		if p.request.Method == method.Unknown {
			return fmt.Errorf("%w: %q", ErrUnknownMethod, p.line[:p.pos])
		}

		p.state = eSpacesAfterMethod
		return nil
	}

	if c < 'A' || c > 'Z' {
		return fmt.Errorf("%w: invalid character in method: %q", ErrUnknownMethod, c)
	}

	return nil
}

func (p *requestLineParser) spacesAfterMethod(c byte) error {
	if isSpaceOrTab(c) {
		return nil
	}

	p.state = eURI
	p.uriBegin = p.pos
	return p.uri(c)
}

func (p *requestLineParser) uri(c byte) error {
	if isSpaceOrTab(c) {
		p.request.URI = string(p.line[p.uriBegin:p.pos])
		p.state = eSpacesAfterURI
		return nil
	}

	if !uriChars[c] {
		return fmt.Errorf("%w: %q", ErrInvalidURIChar, c)
	}

	return nil
}

func (p *requestLineParser) spacesAfterURI(c byte) error {
	if isSpaceOrTab(c) {
		return nil
	}

	return expect('H', eVersionHT)(p, c)
}

func expect(want byte, next requestLineState) requestLineTransition {
	return func(p *requestLineParser, c byte) error {
		if c != want {
			return fmt.Errorf("%w: expected %q but got %q", ErrMalformedVersion, want, c)
		}

		p.state = next
		return nil
	}
}

func (p *requestLineParser) versionMajorStart(c byte) error {
	if !isDigit(c) {
		return fmt.Errorf("%w: expected digit but got %q", ErrMalformedVersion, c)
	}

	p.major = int(c - '0')
	p.state = eVersionMajor
	return nil
}

func (p *requestLineParser) versionMajor(c byte) error {
	if c == '.' {
		p.state = eVersionDot
		return nil
	}

	if !isDigit(c) {
		return fmt.Errorf("%w: expected digit but got %q", ErrMalformedVersion, c)
	}

	if p.major < versionLimit {
		p.major = p.major*10 + int(c-'0')
	}

	return nil
}

func (p *requestLineParser) versionMinor(c byte) error {
	if !isDigit(c) {
		return fmt.Errorf("%w: expected digit but got %q", ErrMalformedVersion, c)
	}

	p.minor = int(c - '0')
	p.state = eEndOfVersion
	return nil
}

func (p *requestLineParser) endOfVersion(c byte) error {
	if !isSpaceOrTab(c) {
		return fmt.Errorf("%w: %q", ErrTrailingGarbage, p.line[p.pos:])
	}

	p.state = eSpacesAfterVersion
	return nil
}

func (p *requestLineParser) spacesAfterVersion(c byte) error {
	if !isSpaceOrTab(c) {
		return fmt.Errorf("%w: %q", ErrTrailingGarbage, p.line[p.pos:])
	}

	return nil
}

// finish validates the state the line ended in and resolves the protocol.
func (p *requestLineParser) finish() error {
	switch p.state {
	case eMethod, eSpacesAfterMethod:
		return fmt.Errorf("%w: missing URI and version", ErrMalformedRequestLine)
	case eURI, eSpacesAfterURI:
		return fmt.Errorf("%w: missing version", ErrMalformedRequestLine)
	case eVersionDot:
		return fmt.Errorf("%w: dot cannot be the last character", ErrMalformedVersion)
	case eVersionMajor, eEndOfVersion, eSpacesAfterVersion:
	default:
		return fmt.Errorf("%w: truncated version", ErrMalformedVersion)
	}

	p.request.Proto = proto.Parse(p.major, p.minor)
	if p.request.Proto == proto.Unknown {
		return fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, p.major, p.minor)
	}

	return nil
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
