package models

import (
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Metadata keys for platform-specific identifiers carried on a company.
// Some platforms address a board by a numeric account ID rather than a slug.
const (
	MetadataWorkableAccountID = "workable_account_id"
	MetadataBuiltInCompanyID  = "builtin_company_id"
)

// Company represents a normalized employer profile, independent of any one
// source platform.
type Company struct {
	gorm.Model
	Slug          string            `json:"slug" gorm:"not null;uniqueIndex"`
	Platform      string            `json:"platform" gorm:"index"` // primary source type the company is scraped through
	Name          string            `json:"name" gorm:"not null"`
	Logo          string            `json:"logo,omitempty"`
	Website       string            `json:"website,omitempty"`
	Description   string            `json:"description,omitempty" gorm:"type:text"`
	Size          string            `json:"size,omitempty"`
	Industry      string            `json:"industry,omitempty"`
	Locations     []string          `json:"locations" gorm:"serializer:json;type:json"`
	Featured      bool              `json:"featured" gorm:"index"`
	FeaturedOrder int               `json:"featured_order"`
	Rating        float64           `json:"rating"`
	ReviewCount   int               `json:"review_count"`
	TotalJobs     int               `json:"total_jobs"` // refreshed by the aggregator after every run
	Metadata      datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:json"`
}

// MetadataString returns the string value stored under key in the company's
// free-form metadata, or "" when absent. JSON numbers are formatted without
// a fractional part so numeric platform IDs round-trip as expected.
func (c *Company) MetadataString(key string) string {
	if c.Metadata == nil {
		return ""
	}
	switch v := c.Metadata[key].(type) {
	case string:
		return v
	case float64:
		// JSON unmarshals all numbers as float64; platform IDs are integral
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}
