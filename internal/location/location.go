// Package location provides canonical URI based identifiers for discoverable
// class file resources. A plain file gets a file URI, an entry inside a jar
// gets the jar:<archive-uri>!/<entry-name> form.
package location

import (
	"path/filepath"
	"strings"
)

const (
	jarScheme      = "jar:"
	entrySeparator = "!/"
)

// Location identifies a discoverable resource by its URI. Locations are
// immutable values comparable with == and usable as map keys. The zero value
// is the empty location.
type Location struct {
	uri string
}

// New wraps the given URI verbatim.
func New(uri string) Location {
	return Location{uri: uri}
}

// Of builds a file URI location from a filesystem path. Relative paths are
// made absolute first so that the same file always gets the same location.
func Of(path string) Location {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	return Location{uri: "file://" + abs}
}

// InArchive builds the location of one named entry inside an archive,
// jar:<archive-uri>!/<entry-name>. When archive already identifies an entry
// the name is appended as a further path element, which covers nested
// containers addressed through an enclosing one.
func InArchive(archive Location, entry string) Location {
	entry = strings.TrimPrefix(entry, "/")
	uri := archive.uri
	if strings.Contains(uri, entrySeparator) {
		return Location{uri: strings.TrimSuffix(uri, "/") + "/" + entry}
	}
	if !strings.HasPrefix(uri, jarScheme) {
		uri = jarScheme + uri
	}
	return Location{uri: uri + entrySeparator + entry}
}

// Append returns a child location with segment concatenated to the receiver's
// URI. The receiver is left unchanged. Appending to a location of a jar
// archive produces the archive entry form instead of a plain path join.
func (l Location) Append(segment string) Location {
	segment = strings.TrimPrefix(segment, "/")
	if l.IsJar() && !strings.Contains(l.uri, entrySeparator) {
		return InArchive(l, segment)
	}
	return Location{uri: strings.TrimSuffix(l.uri, "/") + "/" + segment}
}

// IsJar reports whether the location identifies a jar archive or an entry
// inside one.
func (l Location) IsJar() bool {
	return strings.HasPrefix(l.uri, jarScheme) ||
		strings.HasSuffix(l.uri, ".jar") ||
		strings.Contains(l.uri, entrySeparator)
}

// URI returns the canonical URI string.
func (l Location) URI() string {
	return l.uri
}

func (l Location) String() string {
	return l.uri
}
