package payslips

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/stipend/pkg/query"
)

const (
	defaultSweepWorkers = 8
	defaultSweepMinAge  = time.Hour
	storagePrefix       = "payslips/"
)

// ReconcileOptions controls an orphaned-blob sweep.
type ReconcileOptions struct {
	// Workers bounds concurrent metadata lookups; zero uses the default.
	Workers int
	// MinAge excludes blobs modified more recently than this from the
	// sweep; zero uses the default. An upload in flight writes its blob
	// before its metadata row exists, so a young unreferenced blob may
	// be an active upload rather than an orphan.
	MinAge time.Duration
	// DryRun reports orphans without deleting them.
	DryRun bool
}

// ReconcileReport summarizes a sweep over stored blobs.
type ReconcileReport struct {
	Scanned  int      `json:"scanned"`
	Skipped  int      `json:"skipped"`
	Orphaned []string `json:"orphaned"`
	Removed  int      `json:"removed"`
}

// Reconcile removes blobs that no metadata record references. The upload
// path can leak such orphans when a compensating delete fails after a
// rejected insert; the sweep restores the storage/metadata agreement.
func (r *repo) Reconcile(ctx context.Context, opts ReconcileOptions) (*ReconcileReport, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultSweepWorkers
	}

	minAge := opts.MinAge
	if minAge <= 0 {
		minAge = defaultSweepMinAge
	}
	cutoff := time.Now().Add(-minAge)

	blobs, err := r.storage.List(ctx, storagePrefix)
	if err != nil {
		return nil, fmt.Errorf("list stored blobs: %w", err)
	}

	report := &ReconcileReport{Scanned: len(blobs)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, blob := range blobs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			// A blob younger than the grace window may belong to an
			// upload whose metadata insert has not committed yet.
			if blob.Modified.After(cutoff) {
				mu.Lock()
				report.Skipped++
				mu.Unlock()
				return nil
			}

			url := r.storage.URL(blob.Key)

			referenced, err := r.referenced(gctx, url)
			if err != nil {
				return fmt.Errorf("check %s: %w", blob.Key, err)
			}
			if referenced {
				return nil
			}

			if !opts.DryRun {
				if err := r.storage.Delete(gctx, url); err != nil {
					return fmt.Errorf("delete orphan %s: %w", blob.Key, err)
				}
			}

			mu.Lock()
			report.Orphaned = append(report.Orphaned, blob.Key)
			if !opts.DryRun {
				report.Removed++
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info(
		"blob sweep complete",
		"scanned", report.Scanned,
		"skipped", report.Skipped,
		"orphaned", len(report.Orphaned),
		"removed", report.Removed,
		"dry_run", opts.DryRun,
	)
	return report, nil
}

func (r *repo) referenced(ctx context.Context, url string) (bool, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("FileURL", url).
		BuildCount()

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
