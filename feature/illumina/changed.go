package illumina

import (
	"database/sql"
	"fmt"
	"time"

	"seq-metadata/core/mlwh"

	"gorm.io/gorm"
)

// FindComponentsChanged finds components whose tracking metadata in the ML
// warehouse has changed at or after the given time, and streams them to fn
// in warehouse flowcell row id order.
//
// A change is defined as any one of the recorded_at columns of sample, study
// or iseq_flowcell, or the last_changed column of iseq_product_metrics,
// having a timestamp at or after since. Components are distinct
// (run, position, tag index) triples and carry no subset information, which
// is not a warehouse attribute.
//
// Rows are read lazily; if fn returns an error, iteration stops and the
// error is returned.
func FindComponentsChanged(db *gorm.DB, since time.Time, fn func(Component) error) error {
	rows, err := db.Model(&mlwh.IseqProductMetrics{}).
		Distinct("iseq_product_metrics.id_run", "iseq_flowcell.position", "iseq_flowcell.tag_index").
		Joins("JOIN iseq_flowcell ON iseq_flowcell.id_iseq_flowcell_tmp = iseq_product_metrics.id_iseq_flowcell_tmp").
		Joins("JOIN sample ON sample.id_sample_tmp = iseq_flowcell.id_sample_tmp").
		Joins("JOIN study ON study.id_study_tmp = iseq_flowcell.id_study_tmp").
		Where("sample.recorded_at >= ? OR study.recorded_at >= ? OR iseq_flowcell.recorded_at >= ? OR iseq_product_metrics.last_changed >= ?",
			since, since, since, since).
		Order("iseq_flowcell.id_iseq_flowcell_tmp ASC").
		Rows()
	if err != nil {
		return fmt.Errorf("changed component query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			runID    int
			position int
			tagIndex sql.NullInt64
		)
		if err := rows.Scan(&runID, &position, &tagIndex); err != nil {
			return fmt.Errorf("failed to scan changed component row: %w", err)
		}

		component := Component{RunID: runID, Position: position}
		if tagIndex.Valid {
			tag := int(tagIndex.Int64)
			component.TagIndex = &tag
		}

		if err := fn(component); err != nil {
			return err
		}
	}

	return rows.Err()
}
