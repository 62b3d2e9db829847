package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/CZERTAINLY/class-lens/internal/location"
)

// File is a zip archive on the local filesystem. It holds no open OS handle:
// Entries and OpenEntry each open the file again, so opening distinct entries
// concurrently needs no locking and a File stays valid as long as the path
// does.
type File struct {
	path string
	loc  location.Location
}

// Open returns a File for the archive at path. The entry directory is not
// read yet; a corrupt archive fails once Entries is called.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("archive %s: %w", path, fs.ErrInvalid)
	}
	return &File{path: path, loc: location.Of(path)}, nil
}

func (f *File) Location() location.Location {
	return f.loc
}

func (f *File) Entries() ([]Entry, error) {
	zr, err := zip.OpenReader(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading entry directory of %s: %w", f.path, err)
	}
	defer func() {
		_ = zr.Close()
	}()
	return listEntries(&zr.Reader), nil
}

func (f *File) OpenEntry(name string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(f.path)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", f.path, err)
	}
	rc, err := openEntry(&zr.Reader, name)
	if err != nil {
		_ = zr.Close()
		return nil, err
	}
	return &entryReader{ReadCloser: rc, container: zr}, nil
}

// Bytes is an archive held fully in memory, typically a nested jar read out
// of an enclosing container. The caller supplies the location under which
// its entries are addressed.
type Bytes struct {
	loc location.Location
	b   []byte
}

func NewBytes(loc location.Location, b []byte) *Bytes {
	return &Bytes{loc: loc, b: b}
}

func (a *Bytes) Location() location.Location {
	return a.loc
}

func (a *Bytes) Entries() ([]Entry, error) {
	zr, err := a.reader()
	if err != nil {
		return nil, err
	}
	return listEntries(zr), nil
}

func (a *Bytes) OpenEntry(name string) (io.ReadCloser, error) {
	zr, err := a.reader()
	if err != nil {
		return nil, err
	}
	return openEntry(zr, name)
}

func (a *Bytes) reader() (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(a.b), int64(len(a.b)))
	if err != nil {
		return nil, fmt.Errorf("reading entry directory of %s: %w", a.loc, err)
	}
	return zr, nil
}

func listEntries(zr *zip.Reader) []Entry {
	entries := make([]Entry, 0, len(zr.File))
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Name: zf.Name,
			Size: int64(zf.UncompressedSize64),
		})
	}
	return entries
}

func openEntry(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, zf := range zr.File {
		if zf.Name == name {
			return zf.Open()
		}
	}
	return nil, fmt.Errorf("entry %s: %w", name, fs.ErrNotExist)
}

// entryReader closes the containing zip handle together with the entry
// stream.
type entryReader struct {
	io.ReadCloser
	container *zip.ReadCloser
}

func (r *entryReader) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.container.Close(); err == nil {
		err = cerr
	}
	return err
}
