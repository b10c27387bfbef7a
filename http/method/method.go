package method

type Method uint8

const (
	Unknown Method = iota
	GET
	POST
	HEAD
	OPTIONS
	PATCH
	PUT
	DELETE

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// List contains all the recognized HTTP methods, sorted by their integer value.
var List = []Method{GET, POST, HEAD, OPTIONS, PATCH, PUT, DELETE}

var names = [...]string{
	Unknown: "UNKNOWN",
	GET:     "GET",
	POST:    "POST",
	HEAD:    "HEAD",
	OPTIONS: "OPTIONS",
	PATCH:   "PATCH",
	PUT:     "PUT",
	DELETE:  "DELETE",
}

func (m Method) String() string {
	if int(m) >= len(names) {
		return names[Unknown]
	}

	return names[m]
}

// Parse matches the token exactly. Anything else, lowercase spellings included,
// is Unknown.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		} else if str == "PUT" {
			return PUT
		}
	case 4:
		if str == "POST" {
			return POST
		} else if str == "HEAD" {
			return HEAD
		}
	case 5:
		if str == "PATCH" {
			return PATCH
		}
	case 6:
		if str == "DELETE" {
			return DELETE
		}
	case 7:
		if str == "OPTIONS" {
			return OPTIONS
		}
	}

	return Unknown
}
