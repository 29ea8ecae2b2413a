package locations

import (
	"context"
	"errors"
	"sync"

	"seq-metadata/core/obstore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FindProducts finds all exportable data objects in a collection and returns
// their product records in no particular order.
//
// The collection is scanned for the primary extension first; if that pass
// yields no products the same collection is rescanned for the fallback
// extension before giving up, so a collection produces at most two passes.
func FindProducts(ctx context.Context, factory obstore.Factory, log *zap.Logger, coll string, cfg Config) ([]Product, error) {
	log = log.With(
		zap.String("batch_id", uuid.NewString()),
		zap.String("collection", coll))

	products, err := scanCollection(ctx, factory, log, coll, cfg.PrimaryExt, cfg.Workers)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		log.Warn("No products found, retrying with fallback extension",
			zap.String("primary_ext", cfg.PrimaryExt),
			zap.String("fallback_ext", cfg.FallbackExt))
		return scanCollection(ctx, factory, log, coll, cfg.FallbackExt, cfg.Workers)
	}

	return products, nil
}

type extractResult struct {
	path    string
	product *Product
	err     error
}

// scanCollection walks the immediate contents of a collection with a bounded
// pool of workers, one task per contained data object. Each worker acquires
// its own store client from the factory; client handles are not shared
// across workers. A single object's failure never aborts the scan: missing
// id_product metadata is reported as a warning and exclusions at debug
// level, while any other per-object error fails the batch.
func scanCollection(ctx context.Context, factory obstore.Factory, log *zap.Logger, coll, ext string, workers int) ([]Product, error) {
	if workers < 1 {
		workers = 1
	}

	lister, err := factory()
	if err != nil {
		return nil, err
	}

	tasks := make(chan string)
	results := make(chan extractResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			client, err := factory()
			if err != nil {
				// Report the connection failure against every task this
				// worker would have handled, then drain.
				for path := range tasks {
					results <- extractResult{path: path, err: err}
				}
				return
			}

			for path := range tasks {
				product, err := makeProduct(ctx, client, path, ext)
				results <- extractResult{path: path, product: product, err: err}
			}
		}()
	}

	done := make(chan struct{})
	var products []Product
	var batchErr error
	go func() {
		defer close(done)
		for res := range results {
			switch {
			case res.err == nil:
				products = append(products, *res.product)
			case errors.Is(res.err, ErrMissingMetadata):
				log.Warn("Missing product metadata",
					zap.String("path", res.path), zap.Error(res.err))
			case errors.Is(res.err, ErrExcludedObject):
				log.Debug("Excluded object",
					zap.String("path", res.path), zap.Error(res.err))
			default:
				if batchErr == nil {
					batchErr = res.err
				}
			}
		}
	}()

	var listErr error
	for item := range lister.IterContents(ctx, coll) {
		if item.Err != nil {
			listErr = item.Err
			break
		}
		if item.IsCollection {
			continue
		}
		tasks <- item.Path
	}
	close(tasks)
	wg.Wait()
	close(results)
	<-done

	if listErr != nil {
		return nil, listErr
	}
	if batchErr != nil {
		return nil, batchErr
	}
	return products, nil
}
