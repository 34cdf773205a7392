// Package models defines the database models for the aggregation engine
package models

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing API call
	DefaultLimit = 50
)

// ListOptions represents pagination and filtering options for list operations
type ListOptions struct {
	Limit  int `json:"limit"`  // Number of items to return
	Offset int `json:"offset"` // Number of items to skip
}

// JobFilter represents the filters accepted by the job listing API
type JobFilter struct {
	Platform       string          `json:"platform,omitempty"`
	Remote         *bool           `json:"remote,omitempty"`
	Seniority      *Seniority      `json:"seniority,omitempty"`
	EmploymentType *EmploymentType `json:"employment_type,omitempty"`
	ActiveOnly     bool            `json:"active_only"`
}
