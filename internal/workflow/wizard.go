// Package workflow implements the multi-step drafting wizard: which steps
// apply for which document category, forward/backward navigation with skip
// symmetry, and the auto-attachment of well-known templates on the
// simplified path.
package workflow

import (
	"errors"

	"github.com/google/uuid"

	"github.com/patronacct/draftboard/internal/docgen"
	"github.com/patronacct/draftboard/internal/models"
)

// Step is one wizard state. Steps are skipped, never reordered.
type Step int

const (
	StepCategory Step = iota
	StepEntity
	StepLibrary
	StepHeader
	StepFields
	StepPreview
)

func (s Step) String() string {
	switch s {
	case StepCategory:
		return "category"
	case StepEntity:
		return "entity"
	case StepLibrary:
		return "library"
	case StepHeader:
		return "header"
	case StepFields:
		return "fields"
	case StepPreview:
		return "preview"
	}
	return "unknown"
}

var (
	ErrNoCategory = errors.New("no_document_category_selected")
	ErrNoSubType  = errors.New("incorporation_requires_sub_type")
	ErrNotPreview = errors.New("wizard_not_at_preview")
)

// Names of the single-purpose system templates auto-attached on the
// simplified path, matched by fixed name per sub-type.
const (
	TemplateNameNOC          = "Standard NOC Template"
	TemplateNameSpecimenCard = "Specimen Signature Card"
	TemplateNameResignation  = "Standard Resignation Letter"
	TemplateNameDIR2         = "Form DIR-2 Consent"
)

// Wizard is one in-progress draft. It accumulates the entity details, the
// resolution items and the header configuration as steps complete, and at
// the terminal step holds the assembled (possibly hand-edited) HTML.
type Wizard struct {
	Step           Step
	DocType        string
	SubType        string
	CompanyDetails models.CompanyDetails
	Items          []models.ResolutionItem
	HeaderFooter   models.HeaderFooterConfig
	EditedContent  string

	// NewID generates item identifiers; defaults to random UUIDs.
	NewID func() string
}

// New starts a fresh wizard at the category-selection step with the
// original defaults (registered office, quorum present, Director signatory).
func New() *Wizard {
	return &Wizard{
		Step: StepCategory,
		CompanyDetails: models.CompanyDetails{
			MeetingPlace:  "Registered Office",
			MeetingType:   models.MeetingBoard,
			QuorumPresent: true,
		},
		HeaderFooter: models.HeaderFooterConfig{
			ShowHeader:           true,
			SignatoryDesignation: "Director",
		},
		NewID: uuid.NewString,
	}
}

// NewFromResolution is the edit-existing entry point: it bypasses the wizard
// and jumps straight to the preview step, seeded from the stored document.
func NewFromResolution(res *models.Resolution) *Wizard {
	w := New()
	w.DocType = res.DocType
	w.SubType = res.SubType
	w.CompanyDetails = res.CompanyDetails
	w.Items = res.Items
	w.HeaderFooter = res.HeaderFooter
	w.EditedContent = res.FinalContent
	w.Step = StepPreview
	return w
}

// Simplified reports whether this draft follows the collapsed step sequence.
func (w *Wizard) Simplified() bool {
	return docgen.IsSimplified(w.DocType, w.SubType)
}

// SelectCategory records the document category. Every category except
// INCORPORATION advances straight to entity information; INCORPORATION stays
// on the selection step until a sub-type is chosen.
func (w *Wizard) SelectCategory(category string) {
	w.DocType = category
	w.SubType = ""
	if category != models.CategoryIncorporation {
		w.Step = StepEntity
	}
}

// SelectSubType records the INCORPORATION sub-type and advances to entity
// information.
func (w *Wizard) SelectSubType(subType string) {
	w.SubType = subType
	w.Step = StepEntity
}

// Next advances the wizard, applying the category-dependent skip rules.
// available is the template catalog consulted for simplified-path
// auto-attachment; it may be nil when the caller knows no attachment is due.
func (w *Wizard) Next(available []models.Template) error {
	switch {
	case w.Step == StepCategory:
		if w.DocType == "" {
			return ErrNoCategory
		}
		if w.DocType == models.CategoryIncorporation && w.SubType == "" {
			return ErrNoSubType
		}
		w.Step = StepEntity

	case w.Simplified() && w.Step == StepEntity:
		// Single-purpose documents skip the library and header steps and
		// get their well-known template attached automatically.
		if len(w.Items) == 0 {
			if tpl, ok := w.autoTemplate(available); ok {
				w.AttachTemplate(tpl)
			}
		}
		w.Step = StepFields

	case w.DocType == models.CategoryResolution && w.Step == StepLibrary:
		// Board resolutions always render the fixed certification banner,
		// so the letterhead configuration step does not apply.
		w.Step = StepFields

	case w.Step < StepPreview:
		w.Step++
	}
	if w.Step == StepPreview && w.EditedContent == "" {
		w.EditedContent = w.Assembled()
	}
	return nil
}

// Back retreats one effective step. The skip rules mirror Next exactly:
// stepping back from the first post-skip step lands on the last pre-skip
// step, never on a skipped one.
func (w *Wizard) Back() {
	switch {
	case w.Simplified() && w.Step == StepFields:
		w.Step = StepEntity
	case w.DocType == models.CategoryResolution && w.Step == StepFields:
		w.Step = StepLibrary
	case w.Step > StepCategory:
		w.Step--
	}
}

// autoTemplate picks the template attached implicitly on the simplified
// path: by fixed name for the incorporation sub-types, by category for
// resignation and DIR-2 documents.
func (w *Wizard) autoTemplate(available []models.Template) (models.Template, bool) {
	name := ""
	switch w.SubType {
	case models.SubTypeIncNOC:
		name = TemplateNameNOC
	case models.SubTypeSpecimenSignature:
		name = TemplateNameSpecimenCard
	}
	for _, t := range available {
		if name != "" {
			if t.Name == name {
				return t, true
			}
			continue
		}
		if t.Category == w.DocType {
			return t, true
		}
	}
	return models.Template{}, false
}

// AttachTemplate adds one resolution item instantiated from a template.
// The draft text and field set are snapshots: later template deletion does
// not retroactively alter this draft.
func (w *Wizard) AttachTemplate(tpl models.Template) models.ResolutionItem {
	item := models.ResolutionItem{
		ID:           w.NewID(),
		TemplateID:   tpl.ID,
		TemplateName: tpl.Name,
		DraftText:    tpl.DraftText,
		CustomValues: map[string]string{},
		Fields:       tpl.Fields,
	}
	w.Items = append(w.Items, item)
	return item
}

// RemoveItem drops an item from the draft by id.
func (w *Wizard) RemoveItem(itemID string) {
	kept := w.Items[:0]
	for _, it := range w.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	w.Items = kept
}

// SetValue records a user-entered value for one field of one item.
func (w *Wizard) SetValue(itemID, fieldLabel, value string) {
	for i := range w.Items {
		if w.Items[i].ID == itemID {
			if w.Items[i].CustomValues == nil {
				w.Items[i].CustomValues = map[string]string{}
			}
			w.Items[i].CustomValues[fieldLabel] = value
			return
		}
	}
}

// Assembled merges and assembles the current draft. Entering the preview
// step seeds EditedContent with this output; subsequent free-form edits
// replace it and are never parsed back into the items.
func (w *Wizard) Assembled() string {
	return docgen.Assemble(w.CompanyDetails, w.Items, w.HeaderFooter, w.DocType, w.SubType)
}

// Finalize materializes the persistable document from the terminal step.
// The edited HTML is committed verbatim, not a re-assembly.
func (w *Wizard) Finalize(userID string) (*models.Resolution, error) {
	if w.Step != StepPreview {
		return nil, ErrNotPreview
	}
	content := w.EditedContent
	if content == "" {
		content = w.Assembled()
	}
	docType := w.DocType
	if docType == "" {
		docType = models.CategoryResolution
	}
	return &models.Resolution{
		UserID:         userID,
		CompanyDetails: w.CompanyDetails,
		Items:          w.Items,
		HeaderFooter:   w.HeaderFooter,
		FinalContent:   content,
		DocType:        docType,
		SubType:        w.SubType,
	}, nil
}
