// Package locations extracts per-object product records from sequencing run
// collections for bulk loading into the warehouse's product locations table.
//
// Each data object matching the target extension is classified by its
// metadata: the unassigned-read bin (tag index 0), PhiX-referenced controls
// and read subsets are excluded silently; anything else must carry an
// id_product attribute, whose absence is reported per object without
// aborting the batch. An alt_process attribute overrides the recorded
// pipeline name.
//
// Extraction runs as a bounded pool of workers, each holding its own store
// client. No per-object timeout is applied; a stalled query stalls the
// pool's completion, which is an accepted limitation. Output ordering across
// workers is not guaranteed.
package locations
