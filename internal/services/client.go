package services

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/patronacct/draftboard/internal/models"
)

// CSV column headers for the client master import. The director column packs
// name:DIN pairs so a roster fits one flat file.
var clientCSVHeaders = []string{
	"Company Name",
	"CIN",
	"Address",
	"Email",
	"Directors (Format: Name1:DIN1, Name2:DIN2)",
}

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// UpsertFromMeeting refreshes (or creates) the roster row for the company a
// document was just drafted for. Directors come from the attendance list;
// attendance carries no DINs, so existing DINs are preserved by name when
// the profile already exists.
func (s *ClientService) UpsertFromMeeting(d models.CompanyDetails) (*models.ClientProfile, error) {
	if strings.TrimSpace(d.CIN) == "" {
		return nil, errors.New("cin required")
	}
	directors := parseDirectorNames(d.DirectorsPresent)

	var existing models.ClientProfile
	err := s.db.First(&existing, "cin = ?", d.CIN).Error
	switch {
	case err == nil:
		known := map[string]string{}
		for _, dir := range existing.Directors {
			known[dir.Name] = dir.DIN
		}
		for i := range directors {
			if din, ok := known[directors[i].Name]; ok {
				directors[i].DIN = din
			}
		}
		existing.CompanyName = d.CompanyName
		existing.Address = d.Address
		existing.CompanyEmail = d.CompanyEmail
		existing.Directors = directors
		existing.UpdatedAt = time.Now()
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile := models.ClientProfile{
			ID:           uuid.NewString(),
			CIN:          d.CIN,
			CompanyName:  d.CompanyName,
			Address:      d.Address,
			CompanyEmail: d.CompanyEmail,
			Directors:    directors,
			UpdatedAt:    time.Now(),
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	default:
		return nil, err
	}
}

// Upsert writes a full profile, keyed by CIN.
func (s *ClientService) Upsert(p models.ClientProfile) (*models.ClientProfile, error) {
	if strings.TrimSpace(p.CIN) == "" {
		return nil, errors.New("cin required")
	}
	var existing models.ClientProfile
	err := s.db.First(&existing, "cin = ?", p.CIN).Error
	switch {
	case err == nil:
		p.ID = existing.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		p.ID = uuid.NewString()
	default:
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := s.db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns profiles sorted by company name, optionally filtered by a
// case-insensitive substring match on name or CIN.
func (s *ClientService) List(search string) ([]models.ClientProfile, error) {
	q := s.db.Order("company_name asc")
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(company_name) LIKE ? OR lower(cin) LIKE ?", like, like)
	}
	var out []models.ClientProfile
	err := q.Find(&out).Error
	return out, err
}

func (s *ClientService) Get(id string) (*models.ClientProfile, error) {
	var p models.ClientProfile
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ClientService) Delete(id string) error {
	return s.db.Delete(&models.ClientProfile{}, "id = ?", id).Error
}

// ImportCSV bulk-loads profiles from the client master file. Rows missing a
// company name or CIN are skipped, not errors; the count of imported rows is
// returned so the caller can report partial loads.
func (s *ClientService) ImportCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, err
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	pick := func(row []string, names ...string) string {
		for _, n := range names {
			if i, ok := col[n]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	imported := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, err
		}
		name := pick(row, "Company Name", "companyName")
		cin := pick(row, "CIN", "cin")
		if name == "" || cin == "" {
			continue
		}
		profile := models.ClientProfile{
			CIN:          cin,
			CompanyName:  name,
			Address:      pick(row, "Address", "address"),
			CompanyEmail: pick(row, "Email", "email"),
			Directors:    parseDirectorPairs(pick(row, clientCSVHeaders[4], "directors")),
		}
		if _, err := s.Upsert(profile); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// SampleCSV returns the downloadable import template with one example row.
func SampleCSV() ([]byte, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(clientCSVHeaders); err != nil {
		return nil, err
	}
	if err := w.Write([]string{
		"Example Private Limited",
		"U12345MH2023PTC123456",
		"123 Business Park, Mumbai",
		"contact@example.com",
		"John Doe:01234567, Jane Smith:08765432",
	}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// ExportXLSX writes the full roster as a spreadsheet.
func (s *ClientService) ExportXLSX(w io.Writer) error {
	clients, err := s.List("")
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Clients"
	f.SetSheetName("Sheet1", sheet)
	for i, h := range []string{"Company Name", "CIN", "Address", "Email", "Directors", "Updated At"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, c := range clients {
		values := []any{
			c.CompanyName,
			c.CIN,
			c.Address,
			c.CompanyEmail,
			formatDirectors(c.Directors),
			c.UpdatedAt.Format("2006-01-02"),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

// parseDirectorNames splits an attendance list ("A, B, C") into director
// entries without DINs.
func parseDirectorNames(raw string) []models.DirectorInfo {
	var out []models.DirectorInfo
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, models.DirectorInfo{Name: name})
	}
	return out
}

// parseDirectorPairs splits the packed "Name1:DIN1, Name2:DIN2" CSV column.
func parseDirectorPairs(raw string) []models.DirectorInfo {
	var out []models.DirectorInfo
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, ":", 2)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		din := ""
		if len(parts) == 2 {
			din = strings.TrimSpace(parts[1])
		}
		out = append(out, models.DirectorInfo{Name: name, DIN: din})
	}
	return out
}

func formatDirectors(dirs []models.DirectorInfo) string {
	parts := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d.DIN != "" {
			parts = append(parts, d.Name+" ("+d.DIN+")")
			continue
		}
		parts = append(parts, d.Name)
	}
	return strings.Join(parts, ", ")
}
