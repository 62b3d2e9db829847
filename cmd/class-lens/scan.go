package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/CZERTAINLY/class-lens/internal/log"
	"github.com/CZERTAINLY/class-lens/internal/model"
	"github.com/CZERTAINLY/class-lens/internal/parallel"
	"github.com/CZERTAINLY/class-lens/internal/source"
	"github.com/CZERTAINLY/class-lens/internal/stats"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func doScan(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		config.Classpath = args
	}
	if len(config.Classpath) == 0 {
		return errors.New("no classpath entries: pass them as arguments or via --config")
	}

	// --verbose has a precedence over config file
	verbose := config.Verbose || flagVerbose
	switch config.Log {
	case model.LogStdout:
		slog.SetDefault(log.NewWithWriter(os.Stdout, verbose))
	case model.LogDiscard:
		slog.SetDefault(log.NewWithWriter(io.Discard, false))
	default:
		slog.SetDefault(log.New(verbose))
	}

	ctx := log.ContextAttrs(cmd.Context(),
		slog.String("scan_id", uuid.NewString()),
		slog.Int("pid", os.Getpid()),
	)
	slog.DebugContext(ctx, "scan", "config", config)

	counter := stats.New("class_lens")
	include := model.Excluding(config.Exclude...)

	entries := make([]source.Entry, 0, len(config.Classpath))
	for _, raw := range config.Classpath {
		entries = append(entries, source.ParseEntry(raw))
	}

	seq, err := source.Entries(ctx, counter, include, entries...)
	if err != nil {
		return err
	}

	if config.Digest {
		err = printDigests(ctx, cmd.OutOrStdout(), counter, config.Jobs, seq)
	} else {
		err = printLocations(ctx, cmd.OutOrStdout(), seq)
	}
	if err != nil {
		return err
	}

	for key, value := range counter.Stats() {
		slog.InfoContext(ctx, "stats", key, value)
	}
	return nil
}

func printLocations(ctx context.Context, w io.Writer, seq iter.Seq[model.Resource]) error {
	for r := range seq {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, r.Location()); err != nil {
			return err
		}
	}
	return nil
}

// printDigests opens every resource in a bounded worker pool - opening
// distinct resources concurrently is safe - and prints location, size and
// sha256 per line. An open failure is logged and skipped, it never stops the
// other resources.
func printDigests(ctx context.Context, w io.Writer, counter model.Stats, jobs int, seq iter.Seq[model.Resource]) error {
	seq2 := func(yield func(model.Resource, error) bool) {
		for r := range seq {
			if !yield(r, nil) {
				return
			}
		}
	}

	for line, err := range parallel.NewMap(ctx, jobs, digest).Iter(seq2) {
		if err != nil {
			var oerr *model.OpenError
			if errors.As(err, &oerr) {
				counter.IncErrResources()
				slog.WarnContext(ctx, "cannot open resource", "location", oerr.Location, "err", oerr.Unwrap())
				continue
			}
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func digest(ctx context.Context, r model.Resource) (string, error) {
	rc, err := r.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = rc.Close() // ignoring close error for CLI tool
	}()

	h := sha256.New()
	n, err := io.Copy(h, rc)
	if err != nil {
		return "", &model.OpenError{Location: r.Location(), Err: err}
	}
	return fmt.Sprintf("%s %d sha256:%s", r.Location(), n, hex.EncodeToString(h.Sum(nil))), nil
}
