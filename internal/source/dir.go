// Package source turns classpath entries - directory trees and jar archives,
// possibly scoped to a sub path - into one uniform stream of class file
// resources for a downstream decoder.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/CZERTAINLY/class-lens/internal/location"
	"github.com/CZERTAINLY/class-lens/internal/model"
)

// Dir recursively scans the filesystem subtree rooted at root and returns a
// resource for every regular file with the class file suffix accepted by
// include. The result is deduplicated by location. A root that does not
// exist yields an empty result and no error. Symlinks are not followed, so a
// link named like a class file is skipped instead of becoming a resource.
// Any failure while walking the tree itself aborts the whole scan with no
// partial result; failures opening an individual resource later stay local
// to that resource.
func Dir(ctx context.Context, counter model.Stats, root string, include model.FilterPolicy) ([]model.Resource, error) {
	if include == nil {
		include = model.IncludeAll
	}
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "root does not exist", "root", root)
		return nil, nil
	}

	seen := make(map[location.Location]model.Resource)
	fn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), model.ClassFileSuffix) {
			return nil
		}
		counter.IncResources()
		loc := location.Of(path)
		if !include(loc) {
			counter.IncExcludedResources()
			return nil
		}
		seen[loc] = model.NewResource(loc, openFile(path))
		return nil
	}
	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	resources := make([]model.Resource, 0, len(seen))
	for _, r := range seen {
		resources = append(resources, r)
	}
	return resources, nil
}

// openFile captures only the path, so the resource re-reads the file from
// disk on every open.
func openFile(path string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}
