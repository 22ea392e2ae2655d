package util

import (
	"errors"
	"fmt"
	"math"
)

// error taxonomy of the conversion pipeline. callers match with errors.Is via
// the Code of the wrapping *Error.
var (
	// ErrGeometryTypeMismatch: a geometry column decoded to a kind the caller
	// did not expect (segment geometry must be a linestring, connector
	// geometry a point).
	ErrGeometryTypeMismatch = errors.New("geometry type mismatch")

	// ErrMissingRequiredField: a segment row without decodable geometry or
	// without a connectors list. fatal for the whole run, partial output is
	// worse than a loud failure.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrUnresolvedConnector: a connector ref names an id absent from the
	// connector table. never fatal, the vertex falls through to minting.
	ErrUnresolvedConnector = errors.New("unresolved connector reference")

	// ErrDegenerateEdge: an edge with fewer than two vertices.
	ErrDegenerateEdge = errors.New("degenerate edge")

	// ErrIoFailure: file open/read/write failures. always fatal.
	ErrIoFailure = errors.New("io failure")
)

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.orig)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.code, target) || errors.Is(e.orig, target)
}

func (e *Error) Code() error {
	return e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// IDMap interns strings into dense uint32 ids, first-encounter order. id 0 is
// always the empty string so records without a name carry a zero name ref.
type IDMap struct {
	StrToID map[string]uint32
	IDToStr map[uint32]string
}

func NewIDMap() IDMap {
	m := IDMap{
		StrToID: make(map[string]uint32),
		IDToStr: make(map[uint32]string),
	}
	m.GetID("")
	return m
}

func (m IDMap) GetID(s string) uint32 {
	if id, ok := m.StrToID[s]; ok {
		return id
	}
	id := uint32(len(m.StrToID))
	m.StrToID[s] = id
	m.IDToStr[id] = s
	return id
}

func (m IDMap) GetStr(id uint32) string {
	return m.IDToStr[id]
}

func (m IDMap) Len() int {
	return len(m.StrToID)
}

func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}
