package models

import "gorm.io/gorm"

// CronConfigKeyScrapeSchedule is the key of the single row holding the
// aggregator's recurring-run schedule.
const CronConfigKeyScrapeSchedule = "scrape_schedule"

// CronConfig is a keyed configuration row. The scrape schedule is the one
// mutable cron expression in the system; updates take effect by re-registering
// the recurring task, not by restarting the process.
type CronConfig struct {
	gorm.Model
	Key         string `json:"key" gorm:"not null;uniqueIndex"`
	Value       string `json:"value" gorm:"not null"`
	Description string `json:"description,omitempty"`
}
