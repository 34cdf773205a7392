package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScrapingStatus represents the outcome of the most recent scrape attempt
// for a (JobBoard, Company) pair.
type ScrapingStatus int

const (
	// ScrapingStatusUnknown means the pair has never been scraped
	ScrapingStatusUnknown ScrapingStatus = iota
	// ScrapingStatusPending indicates a scrape is queued or in flight
	ScrapingStatusPending
	// ScrapingStatusSuccess indicates the last attempt completed
	ScrapingStatusSuccess
	// ScrapingStatusError indicates the last attempt failed
	ScrapingStatusError
)

// JobBoard describes a source platform (ATS or job board) jobs are pulled from.
type JobBoard struct {
	gorm.Model
	Slug     string            `json:"slug" gorm:"not null;uniqueIndex"`
	Name     string            `json:"name" gorm:"not null"`
	BaseURL  string            `json:"base_url,omitempty"`
	Adapter  string            `json:"adapter" gorm:"not null"` // scraper registry key
	Enabled  bool              `json:"enabled" gorm:"index"`
	Priority int               `json:"priority"`
	Metadata datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:json"`
}

// JobBoardCompany is the pivot saying "scrape this Company through this
// JobBoard at this URL". It is the unit of per-source failure isolation.
type JobBoardCompany struct {
	gorm.Model
	JobBoardID     uint           `json:"job_board_id" gorm:"not null;uniqueIndex:idx_board_company"`
	CompanyID      uint           `json:"company_id" gorm:"not null;uniqueIndex:idx_board_company"`
	ScraperURL     string         `json:"scraper_url" gorm:"not null"`
	Enabled        bool           `json:"enabled" gorm:"index"`
	LastScrapedAt  *time.Time     `json:"last_scraped_at,omitempty"`
	ScrapingStatus ScrapingStatus `json:"scraping_status"`
	ErrorMessage   string         `json:"error_message,omitempty" gorm:"type:text"`

	JobBoard JobBoard `json:"job_board,omitempty" gorm:"foreignKey:JobBoardID"`
	Company  Company  `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
}

var scrapingStatusNames = []string{"", "pending", "success", "error"}

func (s ScrapingStatus) String() string {
	if int(s) >= len(scrapingStatusNames) {
		return ""
	}
	return scrapingStatusNames[s]
}

// ParseScrapingStatus converts a string representation of a scraping status
// to ScrapingStatus. The empty string maps to ScrapingStatusUnknown.
func ParseScrapingStatus(str string) (ScrapingStatus, error) {
	for i, name := range scrapingStatusNames {
		if name == str {
			return ScrapingStatus(i), nil
		}
	}
	return ScrapingStatusUnknown, fmt.Errorf("invalid scraping status: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for ScrapingStatus
func (s ScrapingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for ScrapingStatus
func (s *ScrapingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	status, err := ParseScrapingStatus(str)
	if err != nil {
		return err
	}
	*s = status
	return nil
}
