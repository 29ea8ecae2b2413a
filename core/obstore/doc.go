// Package obstore provides the client for the object/metadata store holding
// sequencing run outputs.
//
// Every stored path carries secondary metadata (attribute/value pairs, AVUs)
// and an access control list. The Client interface exposes the operations the
// rest of the application needs: existence checks, lazy collection listing,
// metadata reads and set-reconciling metadata/permission writes. The
// set-reconciling writes add missing entries and remove stale ones, leaving
// matching entries untouched, and report the number of changes so callers can
// detect no-ops.
//
// # Implementation
//
// The bundled implementation wraps the MinIO Go client. Data objects live in
// an S3-compatible bucket under their store path; each object's AVUs and ACL
// are kept in a JSON sidecar object named <path>.meta.json. Sidecars are
// hidden from collection listings.
//
// Client connection handles must not be shared across parallel workers; the
// Factory type lets concurrent code acquire one scoped client per worker.
//
// # Testing
//
// A testify mock of the Client interface is provided in obstore/mocks.
//
// # Usage
//
//	client, err := obstore.NewClient(cfg.Store)
//	ok, err := client.Exists(ctx, "/seq/24338/24338_1.cram")
package obstore
