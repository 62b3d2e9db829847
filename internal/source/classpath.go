package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/CZERTAINLY/class-lens/internal/archive"
	"github.com/CZERTAINLY/class-lens/internal/model"
)

// Entry describes one classpath element: a directory tree or an archive
// file. Prefix scopes an archive to the entries beneath that sub path and is
// invalid for directories.
type Entry struct {
	Path   string
	Prefix string
}

// ParseEntry splits the path!/prefix form used on command lines and in
// config files, e.g. lib/app.jar!/com/example.
func ParseEntry(s string) Entry {
	if path, prefix, ok := strings.Cut(s, "!/"); ok {
		return Entry{Path: path, Prefix: prefix}
	}
	return Entry{Path: s}
}

func (e Entry) String() string {
	if e.Prefix != "" {
		return e.Path + "!/" + e.Prefix
	}
	return e.Path
}

// Classpath resolves entry to the matching scanner - a directory tree is
// walked, anything else is treated as a jar archive - and returns one lazy
// sequence of resources hiding the distinction. A path that does not exist
// scans as empty, like a missing directory root. Construction errors
// (unreadable tree, corrupt archive) are returned here; open errors of
// individual resources surface only when that resource is opened.
func Classpath(ctx context.Context, counter model.Stats, entry Entry, include model.FilterPolicy) (iter.Seq[model.Resource], error) {
	counter.IncSources()

	info, err := os.Stat(entry.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.DebugContext(ctx, "classpath entry does not exist", "entry", entry.String())
		return empty, nil
	case err != nil:
		counter.IncErrSources()
		return nil, fmt.Errorf("resolving classpath entry %s: %w", entry.Path, err)
	case info.IsDir():
		if entry.Prefix != "" {
			counter.IncErrSources()
			return nil, fmt.Errorf("classpath entry %s: prefix %q is only valid for archives", entry.Path, entry.Prefix)
		}
		resources, err := Dir(ctx, counter, entry.Path, include)
		if err != nil {
			counter.IncErrSources()
			return nil, err
		}
		return slices.Values(resources), nil
	default:
		f, err := archive.Open(entry.Path)
		if err != nil {
			counter.IncErrSources()
			return nil, err
		}
		seq, err := Jar(ctx, counter, archive.Ref{Archive: f, Prefix: entry.Prefix}, include)
		if err != nil {
			counter.IncErrSources()
			return nil, err
		}
		return seq, nil
	}
}

// Entries is a convenience wrapper around Classpath for a whole classpath.
// All entries are resolved up front, so a broken entry fails the call before
// anything is consumed; the returned sequence itself is lazy.
func Entries(ctx context.Context, counter model.Stats, include model.FilterPolicy, entries ...Entry) (iter.Seq[model.Resource], error) {
	seqs := make([]iter.Seq[model.Resource], 0, len(entries))
	for _, entry := range entries {
		seq, err := Classpath(ctx, counter, entry, include)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
	}
	return func(yield func(model.Resource) bool) {
		for _, seq := range seqs {
			for r := range seq {
				if !yield(r) {
					return
				}
			}
		}
	}, nil
}

func empty(func(model.Resource) bool) {}
