package models

import "time"

// DirectorInfo is one board member entry on a client profile.
type DirectorInfo struct {
	Name string `json:"name"`
	DIN  string `json:"din"`
}

// ClientProfile is a denormalized summary of a company, upserted as a side
// effect of saving a document. At most one profile exists per CIN; the roster
// is a materialized view of saved documents, not a source of truth.
type ClientProfile struct {
	ID           string         `gorm:"primaryKey;size:36"`
	CIN          string         `gorm:"uniqueIndex;not null"`
	CompanyName  string         `gorm:"not null;index"`
	Address      string
	CompanyEmail string
	Directors    []DirectorInfo `gorm:"serializer:json"`
	UpdatedAt    time.Time
}
