package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/rustdojo/internal/catalog"
	"github.com/abhisek/rustdojo/internal/sandbox"
)

// BatchResult is one exercise's verdict from CheckAll.
type BatchResult struct {
	Exercise catalog.Exercise
	Source   string // the file that was graded
	Outcome  sandbox.Outcome
	Err      error // setup failure for this exercise only
}

// BatchSummary totals a CheckAll run.
type BatchSummary struct {
	Results []BatchResult
	Passed  int
	Total   int
}

// CheckAll grades every exercise, using the working copy when one exists
// and the starter file otherwise. Up to Parallelism exercises are graded at
// once. Progress is never written. A setup failure is reported on the
// affected result; only cancellation of ctx aborts the run.
func (e *Engine) CheckAll(ctx context.Context, timeout time.Duration) (BatchSummary, error) {
	all, err := e.Catalog()
	if err != nil {
		return BatchSummary{}, err
	}

	results := make([]BatchResult, len(all))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i, ex := range all {
		g.Go(func() error {
			src := ex.StarterPath
			if path, err := e.WorkingCopy(ex.ID); err == nil {
				src = path
			}
			res := BatchResult{Exercise: ex, Source: src}

			out, err := e.grader.Grade(gctx, ex, src, sandbox.ResolveTimeout(timeout, ex, e.defaultTimeout))
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				e.log.Warn("check-all: grading failed", zap.String("exercise", ex.ID), zap.Error(err))
				res.Err = err
			}
			res.Outcome = out
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchSummary{}, err
	}

	sum := BatchSummary{Results: results, Total: len(results)}
	for _, r := range results {
		if r.Err == nil && r.Outcome.Passed {
			sum.Passed++
		}
	}
	return sum, nil
}
