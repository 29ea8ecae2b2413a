// Package illumina reconciles identity and access-control metadata of
// Illumina sequencing run outputs against the ML warehouse.
//
// # Components
//
// A Component identifies a set of reads from a run: the run id, the 1-based
// instrument position and, for pooled lanes, the 1-based tag index, plus an
// optional read subset. Components are parsed from, and serialized to, a
// canonical single-line JSON descriptor attached to stored paths as
// component metadata. Tag indexes 0 (the unassigned-read bin), 198 and
// 887/888 (spiked-in controls) have conventional meanings that drive the
// flowcell query.
//
// # Operations
//
//   - FindFlowcellsByComponent: resolve a component to its warehouse
//     flowcell facts (sample, study).
//   - FindComponentsChanged: stream components whose warehouse tracking
//     metadata changed since a checkpoint.
//   - EnsureSecondaryMetadataUpdated: per-path reconciliation of metadata
//     and permissions, including consent-driven lockdown.
//
// All operations are synchronous and single-threaded per path; callers
// managing cross-path parallelism must give each worker its own warehouse
// session and store client. Reconciliation is idempotent, which is what
// makes unconditional re-runs safe without coordination.
package illumina
