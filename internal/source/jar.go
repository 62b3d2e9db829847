package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/CZERTAINLY/class-lens/internal/archive"
	"github.com/CZERTAINLY/class-lens/internal/location"
	"github.com/CZERTAINLY/class-lens/internal/model"
)

// Jar scans the archive borrowed by ref for class file entries beneath
// ref.Prefix. The entry directory is read here, eagerly - an unreadable or
// corrupt archive fails construction and no element is ever produced.
// Everything after that is lazy: suffix and prefix filtering, location
// synthesis (jar:<archive-uri>!/<entry-name>), the include policy and the
// wrapping of the deferred open run only as the caller iterates. An open
// failing later, e.g. after the archive changed on disk, stays local to that
// resource and the sequence remains iterable.
func Jar(ctx context.Context, counter model.Stats, ref archive.Ref, include model.FilterPolicy) (iter.Seq[model.Resource], error) {
	if ref.Archive == nil {
		return nil, errors.New("archive is nil")
	}
	if include == nil {
		include = model.IncludeAll
	}
	entries, err := ref.Archive.Entries()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", ref.Archive.Location(), err)
	}

	arch := ref.Archive
	prefix := strings.TrimPrefix(ref.Prefix, "/")
	return func(yield func(model.Resource) bool) {
		for _, entry := range entries {
			if ctx.Err() != nil {
				return
			}
			if !strings.HasPrefix(entry.Name, prefix) ||
				!strings.HasSuffix(entry.Name, model.ClassFileSuffix) {
				continue
			}
			counter.IncResources()
			loc := location.InArchive(arch.Location(), entry.Name)
			if !include(loc) {
				counter.IncExcludedResources()
				continue
			}
			if !yield(model.NewResource(loc, openEntry(arch, entry.Name))) {
				return
			}
		}
	}, nil
}

// openEntry captures the borrowed archive and the entry name. Each call asks
// the archive for a fresh stream, so a stale archive fails at open time, not
// at scan time.
func openEntry(arch archive.Archive, name string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return arch.OpenEntry(name)
	}
}
