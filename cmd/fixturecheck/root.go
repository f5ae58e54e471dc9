package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spec-kit/userstore/internal/diagnostics"
)

type options struct {
	expectPath  string
	watch       bool
	jsonOutput  bool
	concurrency int
}

// errUnmet marks a run whose findings did not satisfy the expectations.
var errUnmet = errors.New("expectations not met")

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fixturecheck [flags] files...",
		Short: "Type-check Go fixture files and report classified diagnostics",
		Long: `fixturecheck type-checks each file as a single-file package and prints every
diagnostic with its kind and enclosing function. With --expect it fails unless every
finding listed in the YAML file is present.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.expectPath, "expect", "", "expectations YAML to verify against")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "re-run whenever a file changes")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print reports as JSON")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "files checked in parallel")
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, opts *options, files []string) error {
	var exp *diagnostics.Expectations
	if opts.expectPath != "" {
		loaded, err := diagnostics.LoadExpectations(opts.expectPath)
		if err != nil {
			return fmt.Errorf("load expectations: %w", err)
		}
		exp = loaded
	}

	checkOnce := func() error {
		reports, err := diagnostics.CheckFiles(ctx, files, opts.concurrency)
		if err != nil {
			return err
		}
		if err := printReports(stdout, reports, opts.jsonOutput); err != nil {
			return err
		}
		return verify(stderr, exp, reports)
	}

	if !opts.watch {
		return checkOnce()
	}

	if err := checkOnce(); err != nil && !errors.Is(err, errUnmet) {
		return err
	}
	w, err := diagnostics.NewWatcher(files, func() {
		if err := checkOnce(); err != nil && !errors.Is(err, errUnmet) {
			fmt.Fprintln(stderr, err)
		}
	}, func(err error) {
		fmt.Fprintf(stderr, "watcher error: %v\n", err)
	})
	if err != nil {
		return err
	}
	w.Run(ctx)
	return nil
}

func printReports(out io.Writer, reports []*diagnostics.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for _, r := range reports {
		fmt.Fprintf(out, "%s: %d diagnostic(s)\n", r.Path, len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}
	return nil
}

// verify checks the expectations against the report whose base name matches exp.File, or against
// every report when exp.File is empty.
func verify(stderr io.Writer, exp *diagnostics.Expectations, reports []*diagnostics.Report) error {
	if exp == nil {
		return nil
	}
	matched := false
	var errs []error
	for _, r := range reports {
		if exp.File != "" && filepath.Base(r.Path) != exp.File {
			continue
		}
		matched = true
		if err := exp.Verify(r); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, err))
		}
	}
	if !matched {
		errs = append(errs, fmt.Errorf("no checked file matches %q", exp.File))
	}
	if len(errs) == 0 {
		return nil
	}
	fmt.Fprintln(stderr, errors.Join(errs...))
	return errUnmet
}
