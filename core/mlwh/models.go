package mlwh

import (
	"time"
)

// Sample represents a row in the ML warehouse sample table. Only the columns
// used for tracked metadata and consent handling are mapped.
type Sample struct {
	IDSampleTmp      int       `gorm:"column:id_sample_tmp;primaryKey"`
	IDSampleLims     string    `gorm:"column:id_sample_lims"`
	SangerSampleID   *string   `gorm:"column:sanger_sample_id"`
	Name             *string   `gorm:"column:name"`
	AccessionNumber  *string   `gorm:"column:accession_number"`
	CommonName       *string   `gorm:"column:common_name"`
	PublicName       *string   `gorm:"column:public_name"`
	SupplierName     *string   `gorm:"column:supplier_name"`
	Cohort           *string   `gorm:"column:cohort"`
	DonorID          *string   `gorm:"column:donor_id"`
	ConsentWithdrawn bool      `gorm:"column:consent_withdrawn"`
	RecordedAt       time.Time `gorm:"column:recorded_at"`
}

// TableName overrides the table name for Sample.
func (Sample) TableName() string {
	return "sample"
}

// Study represents a row in the ML warehouse study table.
type Study struct {
	IDStudyTmp      int       `gorm:"column:id_study_tmp;primaryKey"`
	IDStudyLims     string    `gorm:"column:id_study_lims"`
	Name            *string   `gorm:"column:name"`
	AccessionNumber *string   `gorm:"column:accession_number"`
	StudyTitle      *string   `gorm:"column:study_title"`
	RecordedAt      time.Time `gorm:"column:recorded_at"`
}

// TableName overrides the table name for Study.
func (Study) TableName() string {
	return "study"
}

// IseqFlowcell associates a run position (and tag index, for pooled lanes)
// with one sample and one study. The id_iseq_flowcell_tmp column is a stable
// warehouse-assigned monotonic id used to order query results
// deterministically.
type IseqFlowcell struct {
	IDIseqFlowcellTmp int       `gorm:"column:id_iseq_flowcell_tmp;primaryKey"`
	IDSampleTmp       int       `gorm:"column:id_sample_tmp"`
	IDStudyTmp        int       `gorm:"column:id_study_tmp"`
	Position          int       `gorm:"column:position"`
	TagIndex          *int      `gorm:"column:tag_index"`
	EntityType        string    `gorm:"column:entity_type"`
	RecordedAt        time.Time `gorm:"column:recorded_at"`

	Sample Sample `gorm:"foreignKey:IDSampleTmp;references:IDSampleTmp"`
	Study  Study  `gorm:"foreignKey:IDStudyTmp;references:IDStudyTmp"`
}

// TableName overrides the table name for IseqFlowcell.
func (IseqFlowcell) TableName() string {
	return "iseq_flowcell"
}

// IseqProductMetrics carries per-product sequencing metrics keyed by
// run / position / tag index and joined to iseq_flowcell.
type IseqProductMetrics struct {
	IDIseqPrMetricsTmp int       `gorm:"column:id_iseq_pr_metrics_tmp;primaryKey"`
	IDIseqFlowcellTmp  *int      `gorm:"column:id_iseq_flowcell_tmp"`
	IDRun              int       `gorm:"column:id_run"`
	Position           int       `gorm:"column:position"`
	TagIndex           *int      `gorm:"column:tag_index"`
	LastChanged        time.Time `gorm:"column:last_changed"`
}

// TableName overrides the table name for IseqProductMetrics.
func (IseqProductMetrics) TableName() string {
	return "iseq_product_metrics"
}
