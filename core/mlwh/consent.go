package mlwh

import (
	"gorm.io/gorm"
)

// FindConsentWithdrawnSamples returns all samples marked as having their
// consent withdrawn, ordered by their warehouse id for reproducible output.
func FindConsentWithdrawnSamples(db *gorm.DB) ([]Sample, error) {
	var samples []Sample
	err := db.
		Where("consent_withdrawn = ?", true).
		Order("id_sample_tmp ASC").
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}
