package obstore

import (
	"context"
	"fmt"
	"strings"
)

// Client defines the interface to the object/metadata store holding
// sequencing run outputs.
type Client interface {
	// Exists checks whether a data object or collection exists at path.
	Exists(ctx context.Context, path string) (bool, error)
	// IterContents returns the immediate children of a collection as a lazy
	// sequence. The channel is closed when iteration completes; a failure
	// mid-iteration is reported as a final Item with Err set.
	IterContents(ctx context.Context, path string) <-chan Item
	// Metadata returns all AVUs attached to a path.
	Metadata(ctx context.Context, path string) ([]AVU, error)
	// AddMetadata attaches any of the given AVUs not already present,
	// returning the number added.
	AddMetadata(ctx context.Context, path string, avus []AVU) (added int, err error)
	// SupersedeMetadata replaces the metadata on a path with the given set,
	// adding missing AVUs and removing stale ones. AVUs already present are
	// left untouched. Returns the number added and removed.
	SupersedeMetadata(ctx context.Context, path string, avus []AVU) (added, removed int, err error)
	// Permissions returns the access control list of a path.
	Permissions(ctx context.Context, path string) ([]AC, error)
	// SupersedePermissions replaces the ACL of a path with the given set,
	// adding missing entries and removing stale ones. Returns the number
	// added and removed.
	SupersedePermissions(ctx context.Context, path string, acl []AC) (added, removed int, err error)
}

// Factory creates a fresh store client. Client connection handles must not
// be shared across parallel workers, so concurrent code takes a Factory and
// acquires one client per worker.
type Factory func() (Client, error)

// InferZone returns the zone (federation namespace) of an absolute store
// path, which is its first path element.
func InferZone(path string) (string, error) {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if !strings.HasPrefix(path, "/") || parts[0] == "" {
		return "", fmt.Errorf("invalid store path %q; no zone component", path)
	}
	return parts[0], nil
}
