package lims

import (
	"fmt"
	"strings"

	"seq-metadata/core/mlwh"
	"seq-metadata/core/obstore"
)

// Tracked sample metadata attributes.
const (
	SampleIDAttr               = "sample_id"
	SampleNameAttr             = "sample"
	SampleAccessionNumberAttr  = "sample_accession_number"
	SampleCommonNameAttr       = "sample_common_name"
	SamplePublicNameAttr       = "sample_public_name"
	SampleSupplierNameAttr     = "sample_supplier_name"
	SampleCohortAttr           = "sample_cohort"
	SampleDonorIDAttr          = "sample_donor_id"
	SampleConsentWithdrawnAttr = "sample_consent_withdrawn"
)

// Tracked study metadata attributes.
const (
	StudyIDAttr              = "study_id"
	StudyNameAttr            = "study"
	StudyAccessionNumberAttr = "study_accession_number"
	StudyTitleAttr           = "study_title"
)

// Sequencing terminology attributes.
const (
	ComponentAttr  = "component"
	TagIndexAttr   = "tag_index"
	ReferenceAttr  = "reference"
	IDProductAttr  = "id_product"
	AltProcessAttr = "alt_process"
	SubsetAttr     = "subset"
)

// managedGroupPrefix marks store groups whose access this application
// manages. One such group exists per study.
const managedGroupPrefix = "ss_"

// managedAttrs are the secondary metadata attributes this application
// manages. Reconciling writes leave all other attributes untouched, so
// primary metadata such as component descriptors survive an update.
var managedAttrs = map[string]struct{}{
	SampleIDAttr:               {},
	SampleNameAttr:             {},
	SampleAccessionNumberAttr:  {},
	SampleCommonNameAttr:       {},
	SamplePublicNameAttr:       {},
	SampleSupplierNameAttr:     {},
	SampleCohortAttr:           {},
	SampleDonorIDAttr:          {},
	SampleConsentWithdrawnAttr: {},
	StudyIDAttr:                {},
	StudyNameAttr:              {},
	StudyAccessionNumberAttr:   {},
	StudyTitleAttr:             {},
}

// IsManagedMetadata returns true if an AVU carries an attribute whose value
// this application manages.
func IsManagedMetadata(avu obstore.AVU) bool {
	_, ok := managedAttrs[avu.Attr]
	return ok
}

// MakeSampleMetadata returns the tracked metadata for a warehouse sample.
// Attributes whose warehouse value is absent are omitted.
func MakeSampleMetadata(sample mlwh.Sample) []obstore.AVU {
	avus := []obstore.AVU{}
	avus = appendIfValue(avus, SampleIDAttr, sample.SangerSampleID)
	avus = appendIfValue(avus, SampleNameAttr, sample.Name)
	avus = appendIfValue(avus, SampleAccessionNumberAttr, sample.AccessionNumber)
	avus = appendIfValue(avus, SampleDonorIDAttr, sample.DonorID)
	avus = appendIfValue(avus, SampleSupplierNameAttr, sample.SupplierName)
	if sample.ConsentWithdrawn {
		avus = append(avus, obstore.AVU{Attr: SampleConsentWithdrawnAttr, Value: "1"})
	}
	return avus
}

// MakeStudyMetadata returns the tracked metadata for a warehouse study.
func MakeStudyMetadata(study mlwh.Study) []obstore.AVU {
	avus := []obstore.AVU{}
	avus = appendIfValue(avus, StudyIDAttr, &study.IDStudyLims)
	avus = appendIfValue(avus, StudyNameAttr, study.Name)
	avus = appendIfValue(avus, StudyAccessionNumberAttr, study.AccessionNumber)
	return avus
}

// MakeSampleACL returns the access control entries granting a study's group
// read access, in the given zone, to data derived from one of its samples.
// A sample with consent withdrawn yields no access.
func MakeSampleACL(sample mlwh.Sample, study mlwh.Study, zone string) []obstore.AC {
	perm := obstore.PermissionRead
	if sample.ConsentWithdrawn {
		perm = obstore.PermissionNull
	}
	return []obstore.AC{{User: StudyGroup(study.IDStudyLims), Zone: zone, Perm: perm}}
}

// StudyGroup returns the managed store group name for a study.
func StudyGroup(idStudyLims string) string {
	return fmt.Sprintf("%s%s", managedGroupPrefix, idStudyLims)
}

// IsManagedAccess returns true if an access control entry refers to a group
// whose membership this application manages.
func IsManagedAccess(ac obstore.AC) bool {
	return strings.HasPrefix(ac.User, managedGroupPrefix)
}

// HasMixedOwnership returns true if an ACL grants managed access to more
// than one study group.
func HasMixedOwnership(acl []obstore.AC) bool {
	groups := make(map[string]struct{})
	for _, ac := range acl {
		if IsManagedAccess(ac) {
			groups[ac.User] = struct{}{}
		}
	}
	return len(groups) > 1
}

func appendIfValue(avus []obstore.AVU, attr string, value *string) []obstore.AVU {
	if value == nil || *value == "" {
		return avus
	}
	return append(avus, obstore.AVU{Attr: attr, Value: *value})
}
