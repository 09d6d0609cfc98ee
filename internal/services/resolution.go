package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/patronacct/draftboard/internal/models"
)

type ResolutionService struct {
	db      *gorm.DB
	clients *ClientService
}

func NewResolutionService(db *gorm.DB) *ResolutionService {
	return &ResolutionService{db: db, clients: NewClientService(db)}
}

// Save persists a finalized document and upserts the client roster entry
// from its company details. A roster failure does not fail the save; the
// roster is a derived view.
func (s *ResolutionService) Save(res *models.Resolution) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}
	if res.CompanyDetails.CIN != "" {
		client, err := s.clients.UpsertFromMeeting(res.CompanyDetails)
		if err == nil {
			res.ClientID = client.ID
		}
	}
	return s.db.Create(res).Error
}

// List returns a user's documents, newest first.
func (s *ResolutionService) List(userID string) ([]models.Resolution, error) {
	var out []models.Resolution
	err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&out).Error
	return out, err
}

// ListAll returns every document, newest first. Admin surface only.
func (s *ResolutionService) ListAll() ([]models.Resolution, error) {
	var out []models.Resolution
	err := s.db.Order("created_at desc").Find(&out).Error
	return out, err
}

func (s *ResolutionService) Get(id string) (*models.Resolution, error) {
	var res models.Resolution
	if err := s.db.First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *ResolutionService) Delete(id string) error {
	return s.db.Delete(&models.Resolution{}, "id = ?", id).Error
}
