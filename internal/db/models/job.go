package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Database field names used in raw query fragments
const (
	JobLastSeenAtField = "last_seen_at"
	JobIsActiveField   = "is_active"
	JobStatusField     = "status"
)

// JobStatus represents the lifecycle state of a posting
type JobStatus int

const (
	// JobStatusActive indicates the posting is still present in the source listing
	JobStatusActive JobStatus = iota
	// JobStatusExpired indicates the posting disappeared from the source listing
	JobStatusExpired
	// JobStatusFilled indicates the posting was marked as filled by an admin
	JobStatusFilled
)

// Seniority represents the experience level a posting targets
type Seniority int

const (
	// SeniorityUnset means the source did not report a level
	SeniorityUnset Seniority = iota
	SeniorityEntry
	SeniorityIntern
	SeniorityJunior
	SeniorityMid
	SenioritySenior
	SeniorityStaff
	SeniorityPrincipal
)

// EmploymentType represents the contract type of a posting
type EmploymentType int

const (
	// EmploymentTypeUnset means the source did not report a type
	EmploymentTypeUnset EmploymentType = iota
	EmploymentTypeFullTime
	EmploymentTypePartTime
	EmploymentTypeContract
	EmploymentTypeInternship
)

// Job represents a normalized posting pulled from one of the source platforms.
//
// (ExternalID, Platform) is the natural key across runs; Hash is a content
// fingerprint used for change detection only, never for identity.
type Job struct {
	gorm.Model
	ExternalID   string         `json:"external_id" gorm:"not null;uniqueIndex:idx_jobs_external_platform"`
	Platform     string         `json:"platform" gorm:"not null;uniqueIndex:idx_jobs_external_platform;index"`
	Hash         *string        `json:"hash,omitempty" gorm:"uniqueIndex"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Location     string         `json:"location"`
	Remote       bool           `json:"remote" gorm:"index"`
	Countries    []string       `json:"countries" gorm:"serializer:json;type:json"`
	Tags         []string       `json:"tags" gorm:"serializer:json;type:json"`
	Seniority    Seniority      `json:"seniority" gorm:"index"`
	Employment   EmploymentType `json:"employment_type" gorm:"index"`
	Requirements []string       `json:"requirements" gorm:"serializer:json;type:json"`
	Benefits     []string       `json:"benefits" gorm:"serializer:json;type:json"`
	Salary       string         `json:"salary,omitempty"`
	ExternalURL  string         `json:"external_url" gorm:"not null"`
	CompanySlug  string         `json:"company_slug" gorm:"index"`
	CompanyID    *uint          `json:"company_id,omitempty" gorm:"index"`
	PublishedAt  time.Time      `json:"published_at"`
	ScrapedAt    time.Time      `json:"scraped_at"`
	FirstSeenAt  time.Time      `json:"first_seen_at"`
	LastSeenAt   time.Time      `json:"last_seen_at" gorm:"index"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	IsActive     bool           `json:"is_active" gorm:"index"`
	Status       JobStatus      `json:"status" gorm:"index"`
}

var jobStatusNames = []string{"active", "expired", "filled"}

func (s JobStatus) String() string {
	if int(s) >= len(jobStatusNames) {
		return "active"
	}
	return jobStatusNames[s]
}

// ParseJobStatus converts a string representation of a job status to JobStatus
func ParseJobStatus(str string) (JobStatus, error) {
	for i, status := range jobStatusNames {
		if status == str {
			return JobStatus(i), nil
		}
	}
	return JobStatus(0), fmt.Errorf("invalid job status: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for JobStatus
func (s JobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for JobStatus
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	status, err := ParseJobStatus(str)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

var seniorityNames = []string{"", "entry", "intern", "junior", "mid", "senior", "staff", "principal"}

func (s Seniority) String() string {
	if int(s) >= len(seniorityNames) {
		return ""
	}
	return seniorityNames[s]
}

// ParseSeniority converts a string representation of a seniority level to Seniority.
// The empty string maps to SeniorityUnset.
func ParseSeniority(str string) (Seniority, error) {
	for i, name := range seniorityNames {
		if name == str {
			return Seniority(i), nil
		}
	}
	return SeniorityUnset, fmt.Errorf("invalid seniority: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for Seniority
func (s Seniority) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for Seniority
func (s *Seniority) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	level, err := ParseSeniority(str)
	if err != nil {
		return err
	}
	*s = level
	return nil
}

var employmentTypeNames = []string{"", "full-time", "part-time", "contract", "internship"}

func (t EmploymentType) String() string {
	if int(t) >= len(employmentTypeNames) {
		return ""
	}
	return employmentTypeNames[t]
}

// ParseEmploymentType converts a string representation of an employment type
// to EmploymentType. The empty string maps to EmploymentTypeUnset.
func ParseEmploymentType(str string) (EmploymentType, error) {
	for i, name := range employmentTypeNames {
		if name == str {
			return EmploymentType(i), nil
		}
	}
	return EmploymentTypeUnset, fmt.Errorf("invalid employment type: %s", str)
}

// MarshalJSON implements the json.Marshaler interface for EmploymentType
func (t EmploymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for EmploymentType
func (t *EmploymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	typ, err := ParseEmploymentType(str)
	if err != nil {
		return err
	}
	*t = typ
	return nil
}
