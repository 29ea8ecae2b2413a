package lims

import (
	"context"

	"seq-metadata/core/obstore"

	"go.uber.org/zap"
)

// UpdateMetadata reconciles the secondary metadata of a stored path with the
// given target set, adding missing AVUs and removing stale ones. Attributes
// this application does not manage (primary metadata such as component
// descriptors and checksums) are preserved.
//
// Returns true if any changes were made, false if the desired metadata were
// already present.
func UpdateMetadata(ctx context.Context, client obstore.Client, log *zap.Logger, path string, avus []obstore.AVU) (bool, error) {
	target := obstore.SortedUniqueAVUs(avus)

	current, err := client.Metadata(ctx, path)
	if err != nil {
		return false, err
	}
	keep := make([]obstore.AVU, 0, len(current))
	for _, avu := range current {
		if !IsManagedMetadata(avu) {
			keep = append(keep, avu)
		}
	}

	log.Debug("Updating metadata", zap.String("path", path), zap.Int("num_avus", len(target)))
	added, removed, err := client.SupersedeMetadata(ctx, path, obstore.SortedUniqueAVUs(append(keep, target...)))
	if err != nil {
		return false, err
	}
	log.Info("Updated metadata",
		zap.String("path", path),
		zap.Int("num_added", added),
		zap.Int("num_removed", removed))

	return added > 0 || removed > 0, nil
}

// UpdatePermissions reconciles the ACL of a stored path with the given
// target entries. Entries for users this application does not manage (the
// owning service user and any administrative accounts) are preserved; only
// managed study-group entries are added or removed.
//
// If the target ACL contains managed permissions for multiple studies it
// issues a warning and revokes managed access, so mixed-study data is never
// opened up.
//
// Returns true if any changes were made, false if the ACL was already in the
// desired state.
func UpdatePermissions(ctx context.Context, client obstore.Client, log *zap.Logger, path string, acl []obstore.AC) (bool, error) {
	target := obstore.SortedUniqueACs(acl)

	if HasMixedOwnership(target) {
		log.Warn("Mixed-study data", zap.String("path", path))
		withheld := make([]obstore.AC, 0, len(target))
		for _, ac := range target {
			if !IsManagedAccess(ac) {
				withheld = append(withheld, ac)
			}
		}
		target = withheld
	}

	// Null permissions mean "no access"; they are realised by absence.
	granted := make([]obstore.AC, 0, len(target))
	for _, ac := range target {
		if ac.Perm != obstore.PermissionNull {
			granted = append(granted, ac)
		}
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

	log.Debug("Updating permissions",
		zap.String("path", path),
		zap.Stringers("keep", keep),
		zap.Stringers("acl", granted))

	added, removed, err := client.SupersedePermissions(ctx, path, obstore.SortedUniqueACs(append(keep, granted...)))
	if err != nil {
		return false, err
	}
	log.Info("Updated permissions",
		zap.String("path", path),
		zap.Int("num_added", added),
		zap.Int("num_removed", removed))

	return added > 0 || removed > 0, nil
}
