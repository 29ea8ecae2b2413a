package locations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"seq-metadata/core/obstore"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// JSONFileVersion is the version of the exported document format.
const JSONFileVersion = "1.0"

// Document is the bulk export consumed by the warehouse loader.
type Document struct {
	Version  string    `json:"version"`
	Products []Product `json:"products"`
}

// WriteDocument finds the products in each of the given collections and
// writes them to w as a single export document. Collections are processed
// concurrently; a collection that does not exist is logged and skipped,
// while any hard failure aborts the export.
func WriteDocument(ctx context.Context, factory obstore.Factory, log *zap.Logger, colls []string, cfg Config, w io.Writer) error {
	var mu sync.Mutex
	products := []Product{}

	g, gctx := errgroup.WithContext(ctx)
	for _, coll := range colls {
		coll := coll
		g.Go(func() error {
			client, err := factory()
			if err != nil {
				return err
			}

			exists, err := client.Exists(gctx, coll)
			if err != nil {
				return err
			}
			if !exists {
				log.Warn("Collection not found", zap.String("collection", coll))
				return nil
			}

			found, err := FindProducts(gctx, factory, log, coll, cfg)
			if err != nil {
				return err
			}
			log.Info("Found products",
				zap.String("collection", coll),
				zap.Int("count", len(found)))

			mu.Lock()
			products = append(products, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	doc := Document{Version: JSONFileVersion, Products: products}
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to write product document: %w", err)
	}
	return nil
}
