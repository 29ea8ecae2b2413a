package illumina

import (
	"fmt"

	"seq-metadata/core/mlwh"

	"gorm.io/gorm"
)

// tagIndexMatch classifies a component's tag index into the closed set of
// query behaviours. Keeping this a closed decision avoids the contradictory
// control-exclusion case being silently absorbed by a fallthrough.
type tagIndexMatch int

const (
	matchExact tagIndexMatch = iota
	matchAnyTag
	matchNoTag
	matchControlExcluded
	matchInvalid
)

func classifyTagIndex(tagIndex *int, includeControls bool) tagIndexMatch {
	switch {
	case tagIndex == nil:
		return matchNoTag
	case *tagIndex == TagIndexControl198,
		*tagIndex == TagIndexControl887,
		*tagIndex == TagIndexControl888:
		if includeControls {
			return matchExact
		}
		return matchControlExcluded
	case *tagIndex == TagIndexBin:
		return matchAnyTag
	case *tagIndex > 0:
		return matchExact
	default:
		return matchInvalid
	}
}

// FindFlowcellsByComponent queries the ML warehouse for flowcell information
// for the given component, with the associated sample and study rows loaded.
//
// Results are distinct and ordered by the warehouse-assigned flowcell row id,
// so identical inputs produce identical output.
//
// If includeControls is true, spiked-in control components (tag index 198 or
// an 887/888 value) are queried like any other tag; if false, such a
// component is a contradictory request and fails with ErrInvalidQuery rather
// than silently returning nothing.
func FindFlowcellsByComponent(db *gorm.DB, component Component, includeControls bool) ([]mlwh.IseqFlowcell, error) {
	query := db.Model(&mlwh.IseqFlowcell{}).
		Distinct("iseq_flowcell.*").
		Joins("JOIN iseq_product_metrics ON iseq_product_metrics.id_iseq_flowcell_tmp = iseq_flowcell.id_iseq_flowcell_tmp").
		Where("iseq_product_metrics.id_run = ?", component.RunID).
		Where("iseq_product_metrics.position = ?", component.Position)

	switch classifyTagIndex(component.TagIndex, includeControls) {
	case matchExact:
		query = query.Where("iseq_product_metrics.tag_index = ?", *component.TagIndex)
	case matchAnyTag:
		// The bin holds unassigned reads from the whole pool, so its
		// sample/study set is every tagged row for the run position.
		query = query.Where("iseq_product_metrics.tag_index IS NOT NULL")
	case matchNoTag:
		query = query.Where("iseq_product_metrics.tag_index IS NULL")
	case matchControlExcluded:
		return nil, fmt.Errorf("%w: attempted to exclude controls for a query "+
			"specifically requesting control tag index %d", ErrInvalidQuery, *component.TagIndex)
	default:
		return nil, fmt.Errorf("%w: invalid tag index %d", ErrInvalidComponent, *component.TagIndex)
	}

	var flowcells []mlwh.IseqFlowcell
	err := query.
		Preload("Sample").
		Preload("Study").
		Order("iseq_flowcell.id_iseq_flowcell_tmp ASC").
		Find(&flowcells).Error
	if err != nil {
		return nil, fmt.Errorf("flowcell query failed for component %s: %w", component, err)
	}

	return flowcells, nil
}
