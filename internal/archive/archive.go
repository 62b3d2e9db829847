// Package archive provides read access to zip based containers (jar files)
// and the reference type used to scope scans to a sub tree of entries.
package archive

import (
	"io"

	"github.com/CZERTAINLY/class-lens/internal/location"
)

// Archive is the read capability over one zip based container. Whether
// distinct entries may be opened concurrently through one value depends on
// the implementation; File and Bytes below both allow it. Scanning never
// serializes opens, so callers sharing a single underlying handle must
// serialize themselves or use one handle per reader.
type Archive interface {
	// Location returns the canonical location of the container itself.
	Location() location.Location
	// Entries returns the archive's entry directory. Reading it is the
	// only eager operation an archive performs during a scan.
	Entries() ([]Entry, error)
	// OpenEntry returns a fresh reader over one named entry's bytes.
	// An unknown name fails with an error wrapping fs.ErrNotExist.
	OpenEntry(name string) (io.ReadCloser, error)
}

// Entry is one named member of an archive directory.
type Entry struct {
	Name string
	Size int64
}

// Ref borrows an archive and optionally scopes enumeration to the entries
// whose names start with Prefix. The archive's lifetime belongs to whoever
// opened it; resources derived from a Ref hold it non-owning and fail when
// opened after the archive became unavailable, not earlier.
type Ref struct {
	Archive Archive
	Prefix  string
}
