package http1

type requestLineState uint8

const (
	eMethod requestLineState = iota
	eSpacesAfterMethod
	eURI
	eSpacesAfterURI
	eVersionH
	eVersionHT
	eVersionHTT
	eVersionHTTP
	eVersionSlash
	eVersionMajorStart
	eVersionMajor
	eVersionDot
	eEndOfVersion
	eSpacesAfterVersion
)

type headersState uint8

const (
	eHeaderName headersState = iota
	eColon
	eSpacesAfterColon
	eHeaderValue
	eSpacesAfterHeaderValue
	eHeaderLF
)
