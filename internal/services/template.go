package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/validation"
)

type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// Validate applies the template-save rules. Duplicate field labels are
// rejected here because two fields with one label would collide in the
// substitution engine, where only one bound value can win.
func (s *TemplateService) Validate(t *models.Template) validation.Violations {
	v := validation.Violations{}
	validation.Required("name", t.Name, v)
	validation.Required("draftText", t.DraftText, v)
	validation.OneOf("category", t.Category, models.Categories(), v)
	labels := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f.Label == "" {
			v["fields"] = "field_label_required"
			continue
		}
		labels = append(labels, f.Label)
	}
	validation.UniqueLabels("fields", labels, v)
	return v
}

// Create persists a new template. Templates are immutable once created;
// revisions are a new template plus a delete.
func (s *TemplateService) Create(t *models.Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	for i := range t.Fields {
		if t.Fields[i].ID == "" {
			t.Fields[i].ID = uuid.NewString()
		}
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	t.IsActive = true
	return s.db.Create(t).Error
}

// List returns the active template catalog, optionally filtered by category.
// System templates and user templates share the catalog.
func (s *TemplateService) List(category string) ([]models.Template, error) {
	q := s.db.Where("is_active = ?", true).Order("created_at asc")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []models.Template
	err := q.Find(&out).Error
	return out, err
}

func (s *TemplateService) Get(id string) (*models.Template, error) {
	var t models.Template
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a template from the catalog. Saved documents keep their
// snapshotted draft text, so this never invalidates existing documents.
func (s *TemplateService) Delete(id string) error {
	return s.db.Delete(&models.Template{}, "id = ?", id).Error
}
