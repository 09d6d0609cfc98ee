package db

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/patronacct/draftboard/internal/models"
)

// SeedSystemTemplates inserts the built-in single-purpose templates on an
// empty template table. These are the auto-attach targets of the simplified
// wizard path and are matched by exact name, so the names are contractual.
func SeedSystemTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Template{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, t := range systemTemplates() {
		t.ID = uuid.NewString()
		t.UserID = "system"
		t.IsSystemTemplate = true
		t.IsActive = true
		if err := db.Create(&t).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin bootstraps the admin account when the configured email does not
// exist yet. No-op when email or password is empty.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		ID:                uuid.NewString(),
		Email:             email,
		Name:              "Administrator",
		Password:          string(hash),
		Role:              models.RoleAdmin,
		IsActive:          true,
		CanCreateTemplate: true,
	}).Error
}

func systemTemplates() []models.Template {
	return []models.Template{
		{
			Name:     "Standard Resignation Letter",
			Category: models.CategoryResignation,
			Fields: []models.CustomField{
				{ID: "f1", Label: "Resignation Date", Type: "date", Required: true},
				{ID: "f2", Label: "Resigning Director Name", Type: "text", Required: true},
				{ID: "f3", Label: "Resigning Director DIN", Type: "text", Required: true},
			},
			DraftText: `<div style="text-align: right; margin-bottom: 20px;">Date: {{Resignation Date}}</div>
<div style="text-align: left; margin-bottom: 20px;">
To,<br/>
The Board of Directors,<br/>
<strong>{{Company_Name}}</strong><br/>
{{Company_Address}}
</div>

<p style="font-weight: bold; margin-bottom: 20px;">Subject: Resignation from the position of Director.</p>

<p>Dear Sir(s),</p>

<p style="text-align: justify; margin-bottom: 15px;">
I Mr./Mrs. <strong>{{Resigning Director Name}}</strong> (DIN: <strong>{{Resigning Director DIN}}</strong>), Director of the company, would like to inform the board that due to some personal and unavoidable circumstances, I hereby tender my resignation from the Directorship of the Company with immediate effect. Kindly accept this letter as my resignation with immediate effect and relieve me of my duties.
</p>

<p style="text-align: justify; margin-bottom: 25px;">
Kindly acknowledge the receipt of this resignation letter and arrange to submit the necessary forms with the office of the Registrar of Companies, to that effect.
</p>

<div style="margin-top: 40px;">
  <p style="font-weight: bold;">{{Resigning Director Name}}</p>
  <p>(DIN: {{Resigning Director DIN}})</p>
  <p>Director</p>
</div>`,
		},
		{
			Name:     "Standard NOC Template",
			Category: models.CategoryIncorporation,
			Fields: []models.CustomField{
				{ID: "n1", Label: "Property Owner Name", Type: "text", Required: true},
				{ID: "n2", Label: "Property Address", Type: "textarea", Required: true},
				{ID: "n3", Label: "Signing Date", Type: "date", Required: true},
				{ID: "n4", Label: "Signing Place", Type: "text", Required: true},
			},
			DraftText: `<div style="text-align: center; margin-bottom: 40px;">
  <h2 style="text-decoration: underline; font-weight: bold; font-size: 16pt; margin: 0;">NO OBJECTION CERTIFICATE</h2>
  <p style="font-weight: bold; margin-top: 10px;">TO WHOMSOEVER IT MAY CONCERN</p>
</div>

<p style="text-align: justify; line-height: 2; font-size: 12pt;">
  I <strong>{{Property Owner Name}}</strong>, the owner of the premises situated at <strong>{{Property Address}}</strong>. I agree to give the said premises to <strong>{{Company_Name}}</strong> and have no objection in using the said premises as the registered office of the proposed company.
</p>

<div style="margin-top: 60px; line-height: 1.8;">
  <p>Date: <strong>{{Signing Date}}</strong></p>
  <p>Name: <strong>{{Property Owner Name}}</strong></p>
  <p>Place: <strong>{{Signing Place}}</strong></p>
  <br/><br/>
  <p>Signature: __________________________</p>
</div>`,
		},
		{
			Name:     "Form DIR-2 Consent",
			Category: models.CategoryDIR2,
			Fields: []models.CustomField{
				{ID: "d1", Label: "Full Name", Type: "text", Required: true},
				{ID: "d2", Label: "DIN", Type: "text", Required: true},
				{ID: "d3", Label: "Father Name", Type: "text", Required: true},
				{ID: "d4", Label: "Residential Address", Type: "textarea", Required: true},
				{ID: "d5", Label: "Email ID", Type: "text", Required: true},
				{ID: "d6", Label: "Mobile No", Type: "text", Required: true},
				{ID: "d7", Label: "PAN", Type: "text", Required: true},
				{ID: "d8", Label: "Occupation", Type: "text", Required: true},
				{ID: "d9", Label: "DOB", Type: "date", Required: true},
				{ID: "d10", Label: "Nationality", Type: "text", Required: true},
				{ID: "d11", Label: "Other Directorships Details", Type: "textarea", Required: false},
				{ID: "d12", Label: "Professional Membership No", Type: "text", Required: false},
			},
			DraftText: `<div style="text-align: center; margin-bottom: 30px;">
  <h2 style="font-weight: bold; font-size: 14pt; margin: 0;">Form DIR-2</h2>
  <p style="font-weight: bold; margin: 5px 0;">Consent to act as a director of a company</p>
  <p style="font-size: 9pt;">[Pursuant to section 152(5) and rule 8 of Companies (Appointment and Qualification of Directors) Rules, 2014]</p>
</div>

<div style="margin-bottom: 20px;">
  To,<br/>
  <strong>{{Company_Name}}</strong><br/>
  {{Company_Address}}
</div>

<p style="font-weight: bold; margin-bottom: 15px;">Subject: Consent to act as director.</p>

<p style="text-align: justify; margin-bottom: 20px;">
  I, <strong>{{Full Name}}</strong>, pursuant to sub-section (5) of section 152 of the Companies Act, 2013 and certify that I am not disqualified to become a director under the Companies Act, 2013.
</p>

<table style="width: 100%; border-collapse: collapse; margin-bottom: 20px; font-size: 11pt;">
  <tr><td style="width: 5%; vertical-align: top;">1.</td><td style="width: 45%; vertical-align: top;">Director Identification Number (DIN):</td><td style="font-weight: bold;">{{DIN}}</td></tr>
  <tr><td style="vertical-align: top;">2.</td><td style="vertical-align: top;">Name (in full):</td><td style="font-weight: bold;">{{Full Name}}</td></tr>
  <tr><td style="vertical-align: top;">3.</td><td style="vertical-align: top;">Father’s Name (in full):</td><td style="font-weight: bold;">{{Father Name}}</td></tr>
  <tr><td style="vertical-align: top;">4.</td><td style="vertical-align: top;">Address:</td><td style="font-weight: bold;">{{Residential Address}}</td></tr>
  <tr><td style="vertical-align: top;">5.</td><td style="vertical-align: top;">E-mail id:</td><td style="font-weight: bold;">{{Email ID}}</td></tr>
  <tr><td style="vertical-align: top;">6.</td><td style="vertical-align: top;">Mobile no.:</td><td style="font-weight: bold;">{{Mobile No}}</td></tr>
  <tr><td style="vertical-align: top;">7.</td><td style="vertical-align: top;">Income-tax PAN:</td><td style="font-weight: bold;">{{PAN}}</td></tr>
  <tr><td style="vertical-align: top;">8.</td><td style="vertical-align: top;">Occupation:</td><td style="font-weight: bold;">{{Occupation}}</td></tr>
  <tr><td style="vertical-align: top;">9.</td><td style="vertical-align: top;">Date of birth:</td><td style="font-weight: bold;">{{DOB}}</td></tr>
  <tr><td style="vertical-align: top;">10.</td><td style="vertical-align: top;">Nationality:</td><td style="font-weight: bold;">{{Nationality}}</td></tr>
  <tr><td style="vertical-align: top;">11.</td><td colspan="2" style="padding-top: 10px; text-align: justify;">
    No. of companies/ LLP in which I am already a director/Designated Partner and out of such companies/LLP the names of the companies/LLP in which I am a Managing Director, Chief Executive Officer, Whole time Director, Secretary, Chief Financial Officer, and Manager:<br/>
    <strong>{{Other Directorships Details}}</strong>
  </td></tr>
  <tr><td style="vertical-align: top;">12.</td><td colspan="2" style="padding-top: 10px;">
    Particulars of membership No. and Certificate of practice No. if the applicant is a member of any professional Institute:<br/>
    <strong>{{Professional Membership No}}</strong>
  </td></tr>
</table>

<p style="font-weight: bold; margin-bottom: 10px;">Declaration</p>
<p style="text-align: justify; margin-bottom: 40px;">
  I declare that I have not been convicted of any offence in connection with the promotion, formation or management of any company or LLP and have not been found guilty of any fraud or misfeasance or of any breach of duty to any company under this Act or any previous company law in the last five years. I further declare that if appointed my total Directorship in all the companies shall not exceed the prescribed number of companies in which a person can be appointed as a Director.
</p>

<div style="margin-top: 40px;">
  <p style="font-weight: bold;">{{Full Name}}</p>
  <p>Director</p>
  <p>DIN: {{DIN}}</p>
</div>`,
		},
		{
			Name:     "Specimen Signature Card",
			Category: models.CategoryIncorporation,
			Fields: []models.CustomField{
				{ID: "s1", Label: "Signatory Names (Comma Separated)", Type: "text", Required: true},
				{ID: "s2", Label: "Signatory Designations (Comma Separated)", Type: "text", Required: true},
			},
			DraftText: `<div style="text-align: center; margin-bottom: 30px;">
  <p style="font-weight: bold; font-size: 11pt; margin: 0;">SPECIMEN SIGNATURE CARD FOR UPLOAD WITH THE ONLINE APPLICATION FOR REGISTRATION WITH EMPLOYEES’ PROVIDENT FUND ORGANISATION</p>
  <p style="font-size: 8pt; margin-top: 5px;">(This card is for the specimen signature of the employers of the establishment at the time of registration of the establishment with the Employees’ P F Organization)</p>
</div>

<div style="margin-bottom: 20px;">
  <p>NAME OF ESTABLISHMENT: <strong>{{Company_Name}}</strong></p>
  <p>ADDRESS OF THE ESTABLISHMENT: <strong>{{Company_Address}}</strong></p>
</div>

<p style="font-size: 9pt; font-style: italic; margin-bottom: 20px;">(Please upload for all employers and for Authorized Signatory if any)</p>

{{DYNAMIC_SIGNATORY_BOXES}}

<div style="margin-top: 30px; border-top: 1px solid #eee; padding-top: 10px; font-size: 10pt;">
  For P F Office Use: Code Number Allotted: ____________________
</div>`,
		},
	}
}
