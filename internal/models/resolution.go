package models

import "time"

// Meeting types referenced by the certification banner.
const (
	MeetingBoard     = "Board Meeting"
	MeetingEGM       = "Extraordinary General Meeting"
	MeetingAGM       = "Annual General Meeting"
	MeetingCommittee = "Committee Meeting"
)

// CompanyDetails holds the identifying and meeting metadata of the entity a
// document is issued for. It is captured fresh per draft and frozen inside
// the saved resolution.
type CompanyDetails struct {
	CIN              string `json:"cin"`
	CompanyName      string `json:"companyName"`
	Address          string `json:"address"`
	CompanyEmail     string `json:"companyEmail"`
	MeetingDate      string `json:"meetingDate"` // YYYY-MM-DD
	MeetingTime      string `json:"meetingTime"`
	MeetingPlace     string `json:"meetingPlace"`
	FinancialYear    string `json:"financialYear"`
	MeetingType      string `json:"meetingType"`
	ChairmanName     string `json:"chairmanName"`
	ChairmanDIN      string `json:"chairmanDin"`
	DirectorsPresent string `json:"directorsPresent"` // free-text, comma separated
	QuorumPresent    bool   `json:"quorumPresent"`
}

// ResolutionItem is one instantiated use of a template inside a document.
// DraftText is copied from the template when the item is added; the item
// stays valid even if the source template is deleted afterwards.
type ResolutionItem struct {
	ID           string            `json:"id"`
	TemplateID   string            `json:"templateId,omitempty"`
	TemplateName string            `json:"templateName"`
	DraftText    string            `json:"draftText"`
	CustomValues map[string]string `json:"customValues"`
	Fields       []CustomField     `json:"fields,omitempty"` // field set snapshot from the template
}

// HeaderFooterConfig carries letterhead and signatory overrides. Empty fields
// fall back to CompanyDetails values at assembly time.
type HeaderFooterConfig struct {
	ShowHeader           bool   `json:"showHeader"`
	HeaderTitle          string `json:"headerTitle"`
	HeaderSubtitle       string `json:"headerSubtitle"`
	SignatoryName        string `json:"signatoryName"`
	SignatoryDesignation string `json:"signatoryDesignation"`
	SignatoryDIN         string `json:"signatoryDin"`
}

// Resolution is the finalized, persisted document. FinalContent is the
// document of record: it may have been hand-edited after assembly, so
// re-merging Items is not guaranteed to reproduce it.
type Resolution struct {
	ID             string             `gorm:"primaryKey;size:36"`
	UserID         string             `gorm:"index"`
	ClientID       string             `gorm:"index"`
	CompanyDetails CompanyDetails     `gorm:"serializer:json"`
	Items          []ResolutionItem   `gorm:"serializer:json"`
	HeaderFooter   HeaderFooterConfig `gorm:"serializer:json"`
	FinalContent   string             `gorm:"type:text"`
	DocType        string             `gorm:"not null;index"`
	SubType        string
	CreatedAt      time.Time
}

// OwnerID implements the policy ownership check.
func (r *Resolution) OwnerID() string { return r.UserID }
