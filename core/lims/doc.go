// Package lims derives tracked secondary metadata and access control from ML
// warehouse sample and study records, and applies them to stored paths.
//
// # Tracked metadata
//
// MakeSampleMetadata and MakeStudyMetadata translate warehouse rows into the
// attribute/value pairs recorded on sequencing data. Absent warehouse values
// produce no attribute rather than an empty one.
//
// # Access control
//
// Each study has a managed store group (ss_<study id>). MakeSampleACL grants
// that group read access, unless the sample's consent has been withdrawn.
// UpdatePermissions reconciles only managed entries and never opens access
// to data whose accumulated ACL spans more than one study.
//
// # Consent withdrawal
//
// EnsureConsentWithdrawn idempotently records the withdrawal marker and
// strips all managed access from a path.
package lims
