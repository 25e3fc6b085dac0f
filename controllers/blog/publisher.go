package blogControllers

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

// PublishDuePosts flips scheduled posts whose time has come to published.
// This is the explicit trigger for the scheduled state: an in-process job,
// not an assumed external cron.
func PublishDuePosts(db *gorm.DB) (int64, error) {
	now := time.Now()
	result := db.Model(&models.BlogPost{}).
		Where("status = ? AND scheduled_for <= ?", models.BlogStatusScheduled, now).
		Updates(map[string]interface{}{
			"status":       models.BlogStatusPublished,
			"published_at": now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("count", result.RowsAffected).Msg("published scheduled posts")
	}
	return result.RowsAffected, nil
}

// RunPublisher loops forever, publishing due posts on every tick.
// Started from main as a goroutine.
func RunPublisher(db *gorm.DB, interval time.Duration) {
	for {
		time.Sleep(interval)
		if _, err := PublishDuePosts(db); err != nil {
			log.Error().Err(err).Msg("scheduled post publisher failed")
		}
	}
}
