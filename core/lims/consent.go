package lims

import (
	"context"

	"seq-metadata/core/obstore"

	"go.uber.org/zap"
)

// consentWithdrawnAVU is the marker recorded on a path whose sample has had
// consent withdrawn.
var consentWithdrawnAVU = obstore.AVU{Attr: SampleConsentWithdrawnAttr, Value: "1"}

// HasConsentWithdrawn returns true if a stored path carries the consent
// withdrawn marker.
func HasConsentWithdrawn(ctx context.Context, client obstore.Client, path string) (bool, error) {
	avus, err := client.Metadata(ctx, path)
	if err != nil {
		return false, err
	}
	for _, avu := range avus {
		if avu == consentWithdrawnAVU {
			return true, nil
		}
	}
	return false, nil
}

// EnsureConsentWithdrawn makes a stored path compliant with consent
// withdrawal: the marker metadata is present and all managed access is
// revoked, leaving only the owning service user and administrative accounts.
// The operation is idempotent.
//
// Returns true if any changes were made.
func EnsureConsentWithdrawn(ctx context.Context, client obstore.Client, log *zap.Logger, path string) (bool, error) {
	added, err := client.AddMetadata(ctx, path, []obstore.AVU{consentWithdrawnAVU})
	if err != nil {
		return false, err
	}

	current, err := client.Permissions(ctx, path)
	if err != nil {
		return false, err
	}
	keep := make([]obstore.AC, 0, len(current))
	for _, ac := range current {
		if !IsManagedAccess(ac) {
			keep = append(keep, ac)
		}
	}

	numAdded, numRemoved, err := client.SupersedePermissions(ctx, path, obstore.SortedUniqueACs(keep))
	if err != nil {
		return false, err
	}

	changed := added > 0 || numAdded > 0 || numRemoved > 0
	if changed {
		log.Info("Applied consent withdrawal",
			zap.String("path", path),
			zap.Int("meta_added", added),
			zap.Int("perm_removed", numRemoved))
	}
	return changed, nil
}
