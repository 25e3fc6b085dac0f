package checkoutControllers

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

// SweepAbandonedDrafts marks checkout drafts older than maxAge as abandoned.
// These are checkouts where the cardholder never came back from the bank
// page; the compensating action for the saga's missing third step.
func SweepAbandonedDrafts(db *gorm.DB, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	result := db.Model(&models.PendingOrder{}).
		Where("status = ? AND created_at < ?", models.PendingOrderAwaiting, cutoff).
		Update("status", models.PendingOrderAbandoned)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("count", result.RowsAffected).Msg("marked stale checkout drafts abandoned")
	}
	return result.RowsAffected, nil
}
