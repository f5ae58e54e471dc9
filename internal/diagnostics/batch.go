package diagnostics

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// CheckFiles checks paths with at most concurrency files in flight. Reports keep the order of
// paths; the first read or check failure cancels the rest.
func CheckFiles(ctx context.Context, paths []string, concurrency int) ([]*Report, error) {
	if concurrency <= 0 {
		concurrency = 4
	}
	reports := make([]*Report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			report, err := Check(ctx, path, src)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
