package models

import "time"

// Document categories and sub-types driving the drafting wizard.
const (
	CategoryResolution    = "RESOLUTION"
	CategoryNOC           = "NOC"
	CategoryIncorporation = "INCORPORATION"
	CategoryResignation   = "RESIGNATION"
	CategoryDIR2          = "DIR2"

	SubTypeSpecimenSignature = "SPECIMEN_SIGNATURE"
	SubTypeIncNOC            = "INC_NOC"
	SubTypeGeneral           = "GENERAL"
)

// Categories lists the valid template/document categories.
func Categories() []string {
	return []string{CategoryResolution, CategoryNOC, CategoryIncorporation, CategoryResignation, CategoryDIR2}
}

// CustomField is a named, typed variable slot on a template. The label doubles
// as the placeholder token name inside the draft text.
type CustomField struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type"` // text, number, date, currency, textarea
	Required bool   `json:"required"`
	Value    string `json:"value,omitempty"`
}

// Template is a reusable draft with {{Label}} tokens. Templates are created
// and deleted, never edited in place: documents snapshot the draft text at
// insertion time, so a later delete cannot invalidate saved documents.
type Template struct {
	ID               string        `gorm:"primaryKey;size:36"`
	UserID           string        `gorm:"index"`
	Name             string        `gorm:"not null;index"`
	Category         string        `gorm:"not null;index"`
	Fields           []CustomField `gorm:"serializer:json"`
	DraftText        string        `gorm:"type:text"`
	IsSystemTemplate bool          `gorm:"not null;default:false"`
	IsActive         bool          `gorm:"not null;default:true"`
	CreatedAt        time.Time
}

// OwnerID implements the policy ownership check.
func (t *Template) OwnerID() string { return t.UserID }
