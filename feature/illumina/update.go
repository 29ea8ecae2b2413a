package illumina

import (
	"context"

	"seq-metadata/core/lims"
	"seq-metadata/core/obstore"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// permissionDecision enumerates the mutually exclusive permission policies
// the engine can apply to a path. Exactly one branch executes per update.
type permissionDecision int

const (
	// decideACL writes the accumulated study access as the target ACL.
	decideACL permissionDecision = iota
	// decideWithdrawn enforces an existing consent-withdrawal marker.
	decideWithdrawn
	// decideNonconsented locks down non-consented human data the same way
	// as an explicit withdrawal.
	decideNonconsented
)

// EnsureSecondaryMetadataUpdated updates the secondary metadata and
// permissions of an Illumina run data object or collection to match the ML
// warehouse.
//
// The path must carry component metadata identifying the constituent
// run / position / tag index components of the data. For each component the
// warehouse is queried for its flowcell facts; sample metadata, study
// metadata and study access are accumulated over all facts and applied as
// set-reconciling writes.
//
// Data that has been merged from samples spanning more than one study
// accumulates managed access for several study groups; such an ACL is never
// written, so mixed-study data stays closed. Spiked-in controls that are
// genuine pool members (tag index 198 or 887/888) are ordinary components
// here and get no special treatment.
//
// Consent handling, in priority order: a path already marked
// consent-withdrawn has the withdrawal enforced; otherwise a path whose
// components contain non-consented human data gets an identical lockdown;
// otherwise the accumulated ACL is written.
//
// The update is idempotent: re-running against an unchanged path returns
// false. Returns true if any metadata or permission state actually changed.
func EnsureSecondaryMetadataUpdated(ctx context.Context, client obstore.Client, db *gorm.DB, log *zap.Logger, path string, includeControls bool) (bool, error) {
	zone, err := obstore.InferZone(path)
	if err != nil {
		return false, err
	}

	avus, err := client.Metadata(ctx, path)
	if err != nil {
		return false, err
	}

	var components []Component
	for _, avu := range avus {
		if avu.Attr != lims.ComponentAttr {
			continue
		}
		component, err := ParseComponent(avu)
		if err != nil {
			return false, err
		}
		components = append(components, component)
	}

	var secondary []obstore.AVU
	var acl []obstore.AC
	for _, component := range components {
		flowcells, err := FindFlowcellsByComponent(db, component, includeControls)
		if err != nil {
			return false, err
		}
		for _, fc := range flowcells {
			secondary = append(secondary, lims.MakeSampleMetadata(fc.Sample)...)
			secondary = append(secondary, lims.MakeStudyMetadata(fc.Study)...)
			acl = append(acl, lims.MakeSampleACL(fc.Sample, fc.Study, zone)...)
		}
	}

	metaUpdate, err := lims.UpdateMetadata(ctx, client, log, path, secondary)
	if err != nil {
		return false, err
	}

	decision := decideACL
	withdrawn, err := lims.HasConsentWithdrawn(ctx, client, path)
	if err != nil {
		return false, err
	}
	switch {
	case withdrawn:
		decision = decideWithdrawn
	default:
		for _, component := range components {
			if component.ContainsNonconsentedHuman() {
				decision = decideNonconsented
				break
			}
		}
	}

	var permUpdate bool
	switch decision {
	case decideWithdrawn:
		log.Info("Consent withdrawn", zap.String("path", path))
		permUpdate, err = lims.EnsureConsentWithdrawn(ctx, client, log, path)
	case decideNonconsented:
		log.Info("Non-consented human data", zap.String("path", path))
		permUpdate, err = lims.EnsureConsentWithdrawn(ctx, client, log, path)
	default:
		permUpdate, err = lims.UpdatePermissions(ctx, client, log, path, acl)
	}
	if err != nil {
		return false, err
	}

	return metaUpdate || permUpdate, nil
}
