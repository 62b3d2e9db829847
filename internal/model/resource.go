package model

import (
	"fmt"
	"io"

	"github.com/CZERTAINLY/class-lens/internal/location"
)

// ClassFileSuffix is the file name suffix of compiled class files. The match
// is exact and case sensitive.
const ClassFileSuffix = ".class"

// Resource is a discovered class file - it does not matter if it comes from
// a directory tree or from an archive. Construction performs no I/O; Open
// derives a fresh byte stream from the backing storage on every call and
// never caches it, so a Resource can be opened repeatedly.
type Resource interface {
	Location() location.Location
	Open() (io.ReadCloser, error)
}

// NewResource pairs a location with a deferred open operation. The open
// function must only read immutable captured state, so invoking it twice
// yields two independent streams with identical content. Failures returned
// by open are wrapped in *OpenError carrying the original cause.
func NewResource(loc location.Location, open func() (io.ReadCloser, error)) Resource {
	return resource{loc: loc, open: open}
}

type resource struct {
	loc  location.Location
	open func() (io.ReadCloser, error)
}

func (r resource) Location() location.Location {
	return r.loc
}

func (r resource) Open() (io.ReadCloser, error) {
	rc, err := r.open()
	if err != nil {
		return nil, &OpenError{Location: r.loc, Err: err}
	}
	return rc, nil
}

// OpenError reports a failure to open one already discovered resource, e.g.
// a file removed after discovery or an archive entry gone after the archive
// was rewritten. It is local to that resource: sibling resources of the same
// scan stay usable and the sequence they came from remains iterable.
type OpenError struct {
	Location location.Location
	Err      error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Location, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
