package guard

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Collect runs every fetcher with at most limit in flight and returns the
// results and errors keyed by source. A failing fetcher never cancels the
// others. The returned error is non-nil only when every fetcher failed.
// A limit <= 0 means no limit.
func Collect[R any](
	ctx context.Context,
	limit int,
	fetchers map[string]func(context.Context) (R, error),
) (map[string]R, map[string]error, error) {
	results := make(map[string]R, len(fetchers))
	errs := make(map[string]error)
	if len(fetchers) == 0 {
		return results, errs, nil
	}

	names := make([]string, 0, len(fetchers))
	for name := range fetchers {
		names = append(names, name)
	}
	slices.Sort(names)

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, name := range names {
		fetch := fetchers[name]
		g.Go(func() error {
			r, err := fetch(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[name] = err
			} else {
				results[name] = r
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(results) == 0 {
		msg := fmt.Sprintf("%d of %d fetches failed", len(errs), len(fetchers))
		return results, errs, zerr.Wrap(domain.ErrAllSourcesFailed, msg)
	}
	return results, errs, nil
}
