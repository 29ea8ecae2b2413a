// Package mlwh defines GORM models for the ML warehouse tables this
// application reads: sample, study, iseq_flowcell and iseq_product_metrics.
//
// The warehouse schema is owned elsewhere; these models map only the columns
// needed to derive tracked metadata, access control and change detection.
// Nullable warehouse columns are mapped to pointer fields so that absent
// values can be distinguished from empty strings when building metadata.
package mlwh
