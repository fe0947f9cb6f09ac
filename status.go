package ngxscope

import "strconv"

// Status is the result code shared by handlers and host operations.
// Negative values are core codes, positive values are protocol status codes.
type Status int

const (
	OK       Status = 0
	Error    Status = -1
	Again    Status = -2
	Busy     Status = -3
	Done     Status = -4
	Declined Status = -5
	Abort    Status = -6
)

// IsOK reports whether s is OK.
func (s Status) IsOK() bool {
	return s == OK
}

// Failed reports whether a caller must stop and return s: either an error
// or a protocol status greater than OK.
func (s Status) Failed() bool {
	return s == Error || s > OK
}

// IsProtocol reports whether s carries a protocol status code.
func (s Status) IsProtocol() bool {
	return s > OK
}

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Error:
		return "ERROR"
	case Again:
		return "AGAIN"
	case Busy:
		return "BUSY"
	case Done:
		return "DONE"
	case Declined:
		return "DECLINED"
	case Abort:
		return "ABORT"
	}
	if s > OK {
		return "HTTP " + strconv.Itoa(int(s))
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// HTTPStatus is a protocol-level response status code.
type HTTPStatus int

const (
	HTTPOK                  HTTPStatus = 200
	HTTPNoContent           HTTPStatus = 204
	HTTPForbidden           HTTPStatus = 403
	HTTPNotFound            HTTPStatus = 404
	HTTPInternalServerError HTTPStatus = 500
	HTTPServiceUnavailable  HTTPStatus = 503
)

// Status converts h into the shared result code. Handlers return it to make
// the host finalize the request with that status.
func (h HTTPStatus) Status() Status {
	return Status(h)
}
